package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// ErrBookNotFound is returned when a book uid cannot be resolved.
var ErrBookNotFound = errors.New("book not found")

// BookReader defines read-only operations for books.
type BookReader interface {
	List(ctx context.Context) ([]models.BookDB, error)
	ListByUser(ctx context.Context, userUID uuid.UUID) ([]models.BookDB, error)
	Get(ctx context.Context, uid uuid.UUID) (*models.BookDB, error)
}

// BookWriter defines write operations for books.
type BookWriter interface {
	Save(ctx context.Context, book models.BookDB) (*models.BookDB, error)
	Update(ctx context.Context, uid uuid.UUID, upd models.BookUpdate) (*models.BookDB, error)
	Delete(ctx context.Context, uid uuid.UUID) (*models.BookDB, error)
}

// BookService handles the book catalog.
type BookService struct {
	reader BookReader
	writer BookWriter
}

// NewBookService creates a new BookService instance.
func NewBookService(reader BookReader, writer BookWriter) *BookService {
	return &BookService{
		reader: reader,
		writer: writer,
	}
}

// List returns all books, newest first.
func (svc *BookService) List(ctx context.Context) ([]models.BookDB, error) {
	books, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list books", "err", err)
		return nil, err
	}
	return books, nil
}

// ListByUser returns the books owned by a user, newest first. A user with
// zero books yields an empty slice.
func (svc *BookService) ListByUser(ctx context.Context, userUID uuid.UUID) ([]models.BookDB, error) {
	books, err := svc.reader.ListByUser(ctx, userUID)
	if err != nil {
		logger.Log.Errorw("failed to list user books", "user_uid", userUID, "err", err)
		return nil, err
	}
	return books, nil
}

// Get returns a single book by uid.
func (svc *BookService) Get(ctx context.Context, uid uuid.UUID) (*models.BookDB, error) {
	book, err := svc.reader.Get(ctx, uid)
	if err != nil {
		logger.Log.Errorw("failed to get book", "uid", uid, "err", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// Create persists a new book owned by the given user. The language defaults
// to "English" when unset.
func (svc *BookService) Create(ctx context.Context, book models.BookDB, ownerUID uuid.UUID) (*models.BookDB, error) {
	book.UserUID = &ownerUID
	if book.Language == nil {
		lang := models.DefaultBookLanguage
		book.Language = &lang
	}

	saved, err := svc.writer.Save(ctx, book)
	if err != nil {
		logger.Log.Errorw("failed to save book", "err", err)
		return nil, err
	}
	return saved, nil
}

// Update applies the non-nil fields of upd to an existing book.
func (svc *BookService) Update(ctx context.Context, uid uuid.UUID, upd models.BookUpdate) (*models.BookDB, error) {
	updated, err := svc.writer.Update(ctx, uid, upd)
	if err != nil {
		logger.Log.Errorw("failed to update book", "uid", uid, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrBookNotFound
	}
	return updated, nil
}

// Delete removes a book and returns the deleted entity.
func (svc *BookService) Delete(ctx context.Context, uid uuid.UUID) (*models.BookDB, error) {
	deleted, err := svc.writer.Delete(ctx, uid)
	if err != nil {
		logger.Log.Errorw("failed to delete book", "uid", uid, "err", err)
		return nil, err
	}
	if deleted == nil {
		return nil, ErrBookNotFound
	}
	return deleted, nil
}
