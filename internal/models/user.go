package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles stored in the users.role column.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserDB represents a user record in the database
type UserDB struct {
	UID        uuid.UUID `json:"uid" db:"uid"`                 // Primary key
	Username   string    `json:"username" db:"username"`       // Display name
	Email      string    `json:"email" db:"email"`             // Unique email
	Password   string    `json:"-" db:"password_hash"`         // Hashed password, never serialized
	Role       string    `json:"role" db:"role"`               // "admin" or "user"
	FirstName  string    `json:"first_name" db:"first_name"`   // First name
	LastName   string    `json:"last_name" db:"last_name"`     // Last name
	IsVerified bool      `json:"is_verified" db:"is_verified"` // Email verification flag
	CreatedAt  time.Time `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`   // Last update timestamp
}
