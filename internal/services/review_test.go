package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookie-app/bookie-api/internal/models"
)

func TestReviewService_AddReviewToBook_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	books := NewMockBookReader(ctrl)
	users := NewMockUserReader(ctrl)
	writer := NewMockReviewWriter(ctrl)
	kafkaWriter := NewMockKafkaWriter(ctrl)

	ctx := context.Background()
	bookUID := uuid.New()
	userUID := uuid.New()

	books.EXPECT().
		Get(ctx, bookUID).
		Return(&models.BookDB{UID: bookUID}, nil)

	users.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(&models.UserDB{UID: userUID, Email: "alice@example.com"}, nil)

	var saved models.ReviewDB
	writer.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, review models.ReviewDB) (*models.ReviewDB, error) {
			saved = review
			review.UID = uuid.New()
			return &review, nil
		})

	kafkaWriter.EXPECT().
		WriteMessages(ctx, gomock.Any()).
		Return(nil)

	svc := NewReviewService(books, users, writer, kafkaWriter)

	review, err := svc.AddReviewToBook(ctx, "alice@example.com", bookUID, 4, "great read")
	require.NoError(t, err)
	require.NotNil(t, review)

	assert.Equal(t, 4, saved.Rating)
	assert.Equal(t, "great read", saved.ReviewText)
	require.NotNil(t, saved.UserUID)
	assert.Equal(t, userUID, *saved.UserUID)
	require.NotNil(t, saved.BookUID)
	assert.Equal(t, bookUID, *saved.BookUID)
}

func TestReviewService_AddReviewToBook_RatingBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewReviewService(nil, nil, nil, nil)

	tests := []struct {
		name   string
		rating int
	}{
		{name: "AtUpperBound", rating: models.MaxReviewRating},
		{name: "AboveUpperBound", rating: 10},
		{name: "Negative", rating: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := svc.AddReviewToBook(context.Background(), "alice@example.com", uuid.New(), tt.rating, "text")
			assert.ErrorIs(t, err, ErrRatingOutOfRange)
			assert.Nil(t, review)
		})
	}
}

func TestReviewService_AddReviewToBook_BookNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	books := NewMockBookReader(ctrl)

	ctx := context.Background()
	bookUID := uuid.New()

	books.EXPECT().
		Get(ctx, bookUID).
		Return(nil, nil)

	svc := NewReviewService(books, nil, nil, nil)

	review, err := svc.AddReviewToBook(ctx, "alice@example.com", bookUID, 3, "text")
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Nil(t, review)
}

func TestReviewService_AddReviewToBook_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	books := NewMockBookReader(ctrl)
	users := NewMockUserReader(ctrl)

	ctx := context.Background()
	bookUID := uuid.New()

	books.EXPECT().
		Get(ctx, bookUID).
		Return(&models.BookDB{UID: bookUID}, nil)

	users.EXPECT().
		GetByEmail(ctx, "ghost@example.com").
		Return(nil, nil)

	svc := NewReviewService(books, users, nil, nil)

	review, err := svc.AddReviewToBook(ctx, "ghost@example.com", bookUID, 3, "text")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, review)
}

func TestReviewService_AddReviewToBook_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	books := NewMockBookReader(ctrl)
	users := NewMockUserReader(ctrl)
	writer := NewMockReviewWriter(ctrl)

	ctx := context.Background()
	bookUID := uuid.New()

	books.EXPECT().
		Get(ctx, bookUID).
		Return(&models.BookDB{UID: bookUID}, nil)

	users.EXPECT().
		GetByEmail(ctx, "alice@example.com").
		Return(&models.UserDB{UID: uuid.New(), Email: "alice@example.com"}, nil)

	writer.EXPECT().
		Save(ctx, gomock.Any()).
		Return(nil, errors.New("constraint violated"))

	svc := NewReviewService(books, users, writer, nil)

	review, err := svc.AddReviewToBook(ctx, "alice@example.com", bookUID, 3, "text")
	assert.ErrorIs(t, err, ErrReviewNotPersisted)
	assert.Nil(t, review)
}
