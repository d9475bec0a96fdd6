package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// User represents a registered member of the sharing platform. A user can
// both list items (owner role) and book other users' items (booker role).
type User struct {
	ID           string // UUID
	Email        string // Unique across all users
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email string
	Name  string

	Page     int
	PageSize int
}
