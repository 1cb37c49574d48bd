package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxReviewRating is the exclusive upper bound for review ratings.
// Valid ratings satisfy 0 <= rating < MaxReviewRating.
const MaxReviewRating = 5

// ReviewDB represents a review record in the database.
// Both foreign keys are nullable at the schema level.
type ReviewDB struct {
	UID        uuid.UUID  `json:"uid" db:"uid"`                 // Primary key
	Rating     int        `json:"rating" db:"rating"`           // Rating, 0 <= rating < 5
	ReviewText string     `json:"review_text" db:"review_text"` // Review body
	UserUID    *uuid.UUID `json:"user_uid" db:"user_uid"`       // Reviewing user
	BookUID    *uuid.UUID `json:"book_uid" db:"book_uid"`       // Reviewed book
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`   // Last update timestamp
}
