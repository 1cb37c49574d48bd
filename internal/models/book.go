package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultBookLanguage is applied when a book is created without a language.
const DefaultBookLanguage = "English"

// BookDB represents a book record in the database.
// All descriptive fields are optional; a book may also exist without an owner.
type BookDB struct {
	UID           uuid.UUID  `json:"uid" db:"uid"`                       // Primary key
	Title         *string    `json:"title" db:"title"`                   // Title
	Author        *string    `json:"author" db:"author"`                 // Author
	Publisher     *string    `json:"publisher" db:"publisher"`           // Publisher
	PageCount     *int       `json:"page_count" db:"page_count"`         // Number of pages
	Language      *string    `json:"language" db:"language"`             // Language, defaults to "English"
	PublishedDate *time.Time `json:"published_date" db:"published_date"` // Publication date
	UserUID       *uuid.UUID `json:"user_uid" db:"user_uid"`             // Owning user, nullable
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`         // Creation timestamp
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`         // Last update timestamp
}

// BookUpdate carries a partial update: only non-nil fields are applied.
type BookUpdate struct {
	Title         *string    `json:"title"`
	Author        *string    `json:"author"`
	Publisher     *string    `json:"publisher"`
	PageCount     *int       `json:"page_count"`
	Language      *string    `json:"language"`
	PublishedDate *time.Time `json:"published_date"`
}
