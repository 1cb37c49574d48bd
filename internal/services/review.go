package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// ErrRatingOutOfRange is returned for ratings outside [0, 5).
var ErrRatingOutOfRange = fmt.Errorf("rating must be at least 0 and less than %d", models.MaxReviewRating)

// ErrReviewNotPersisted is returned for unexpected persistence failures so
// the caller surfaces a generic internal error instead of storage details.
var ErrReviewNotPersisted = errors.New("failed to persist review")

// ReviewWriter defines write operations for reviews.
type ReviewWriter interface {
	Save(ctx context.Context, review models.ReviewDB) (*models.ReviewDB, error)
}

// ReviewService handles review creation.
type ReviewService struct {
	books       BookReader
	users       UserReader
	writer      ReviewWriter
	kafkaWriter KafkaWriter
}

// NewReviewService creates a new ReviewService instance.
func NewReviewService(books BookReader, users UserReader, writer ReviewWriter, kafkaWriter KafkaWriter) *ReviewService {
	return &ReviewService{
		books:       books,
		users:       users,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// AddReviewToBook resolves the book and the reviewing user, then persists a
// review linked to both. The route wrapping this call runs it inside a single
// transaction, so both resolutions and the insert see one consistent
// snapshot and a failure leaves nothing behind.
func (svc *ReviewService) AddReviewToBook(ctx context.Context, userEmail string, bookUID uuid.UUID, rating int, reviewText string) (*models.ReviewDB, error) {
	if rating < 0 || rating >= models.MaxReviewRating {
		return nil, ErrRatingOutOfRange
	}

	book, err := svc.books.Get(ctx, bookUID)
	if err != nil {
		logger.Log.Errorw("failed to resolve book for review", "book_uid", bookUID, "err", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	user, err := svc.users.GetByEmail(ctx, userEmail)
	if err != nil {
		logger.Log.Errorw("failed to resolve user for review", "email", userEmail, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	review, err := svc.writer.Save(ctx, models.ReviewDB{
		Rating:     rating,
		ReviewText: reviewText,
		UserUID:    &user.UID,
		BookUID:    &book.UID,
	})
	if err != nil {
		logger.Log.Errorw("failed to save review", "book_uid", bookUID, "err", err)
		return nil, ErrReviewNotPersisted
	}

	publishAuditEvent(ctx, svc.kafkaWriter, models.AuditEvent{
		Event:     models.EventReviewCreated,
		UserUID:   user.UID.String(),
		Email:     user.Email,
		BookUID:   book.UID.String(),
		ReviewUID: review.UID.String(),
	})

	return review, nil
}
