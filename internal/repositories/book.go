package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

const bookColumns = "uid, title, author, publisher, page_count, language, published_date, user_uid, created_at, updated_at"

// BookReadRepository handles book read operations.
type BookReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewBookReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *BookReadRepository {
	return &BookReadRepository{db: db, txGetter: txGetter}
}

func (r *BookReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// List returns all books, newest first.
func (r *BookReadRepository) List(ctx context.Context) ([]models.BookDB, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM books
		ORDER BY created_at DESC
	`

	books := []models.BookDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &books, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result_count", len(books),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return books, nil
}

// ListByUser returns the books owned by a user, newest first.
func (r *BookReadRepository) ListByUser(ctx context.Context, userUID uuid.UUID) ([]models.BookDB, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE user_uid = $1
		ORDER BY created_at DESC
	`

	books := []models.BookDB{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &books, query, userUID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userUID},
		"result_count", len(books),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return books, nil
}

// Get returns the book with the given uid, or nil if none exists.
func (r *BookReadRepository) Get(ctx context.Context, uid uuid.UUID) (*models.BookDB, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE uid = $1
	`

	var book models.BookDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &book, query, uid)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{uid},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &book, nil
}

// BookWriteRepository handles book write operations.
type BookWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewBookWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *BookWriteRepository {
	return &BookWriteRepository{db: db, txGetter: txGetter}
}

func (r *BookWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new book and returns the persisted row.
func (r *BookWriteRepository) Save(ctx context.Context, book models.BookDB) (*models.BookDB, error) {
	const query = `
		INSERT INTO books (title, author, publisher, page_count, language, published_date, user_uid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + bookColumns + `
	`
	args := []any{book.Title, book.Author, book.Publisher, book.PageCount, book.Language, book.PublishedDate, book.UserUID}

	var saved models.BookDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &saved, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// Update applies only the non-nil fields of upd and returns the updated row,
// or nil if no book with the given uid exists.
func (r *BookWriteRepository) Update(ctx context.Context, uid uuid.UUID, upd models.BookUpdate) (*models.BookDB, error) {
	const query = `
		UPDATE books
		SET title = COALESCE($2, title),
		    author = COALESCE($3, author),
		    publisher = COALESCE($4, publisher),
		    page_count = COALESCE($5, page_count),
		    language = COALESCE($6, language),
		    published_date = COALESCE($7, published_date),
		    updated_at = NOW()
		WHERE uid = $1
		RETURNING ` + bookColumns + `
	`
	args := []any{uid, upd.Title, upd.Author, upd.Publisher, upd.PageCount, upd.Language, upd.PublishedDate}

	var updated models.BookDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &updated, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &updated, nil
}

// Delete removes the book with the given uid and returns the deleted row,
// or nil if none existed.
func (r *BookWriteRepository) Delete(ctx context.Context, uid uuid.UUID) (*models.BookDB, error) {
	const query = `
		DELETE FROM books
		WHERE uid = $1
		RETURNING ` + bookColumns + `
	`

	var deleted models.BookDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &deleted, query, uid)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{uid},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &deleted, nil
}
