package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// ReviewWriteRepository handles review write operations.
type ReviewWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewReviewWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ReviewWriteRepository {
	return &ReviewWriteRepository{db: db, txGetter: txGetter}
}

func (r *ReviewWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new review and returns the persisted row. When the request
// runs inside a transaction the insert joins it, so a failed request leaves
// no partial writes.
func (r *ReviewWriteRepository) Save(ctx context.Context, review models.ReviewDB) (*models.ReviewDB, error) {
	const query = `
		INSERT INTO reviews (rating, review_text, user_uid, book_uid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING uid, rating, review_text, user_uid, book_uid, created_at, updated_at
	`
	args := []any{review.Rating, review.ReviewText, review.UserUID, review.BookUID}

	var saved models.ReviewDB
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
