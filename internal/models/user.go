package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"id"`                   // Primary key
	Username     string    `json:"username" db:"username"`       // Unique username
	Email        string    `json:"email" db:"email"`             // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`         // bcrypt hash, never serialized
	Avatar       *string   `json:"avatar,omitempty" db:"avatar"` // Avatar file name, if any
	CreatedAt    time.Time `json:"created_at" db:"created_at"`   // Creation timestamp
}

// Identity is the resolved caller of a request.
type Identity struct {
	UserID   uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

// RegisterInput carries the fields needed to create a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Avatar   *string
}

// Ack is the payload of operations that only report an outcome.
type Ack struct {
	Message string `json:"message"`
	Changed bool   `json:"changed"` // false when the operation was a no-op
}
