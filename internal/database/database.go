// Package database provides data persistence for users and watch progress.
package database

import (
	"errors"

	"github.com/streamflix/streamflix/internal/models"
)

// ErrDuplicateEmail is returned when creating a user whose email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Database defines the interface for user persistence operations.
type Database interface {
	// FindUserByEmail retrieves a user by exact email match.
	// Returns nil without error when no user exists.
	FindUserByEmail(email string) (*models.User, error)
	// FindUserByID retrieves a user by primary key.
	// Returns nil without error when no user exists.
	FindUserByID(id uint) (*models.User, error)
	// CreateUser inserts a new user; fails with ErrDuplicateEmail when the
	// email is already registered.
	CreateUser(user *models.User) error
	// SaveUser persists all fields of an existing user.
	SaveUser(user *models.User) error
	// UpdatePassword overwrites only the stored password hash.
	UpdatePassword(id uint, hash string) error
	// Close closes the database connection
	Close() error
}

// ProgressStore defines the interface for watch-progress persistence.
type ProgressStore interface {
	// SaveProgress upserts one progress record, keyed by (user, item).
	SaveProgress(p *models.WatchProgress) error
	// ListProgress returns all records for a user, newest first.
	ListProgress(userID uint) ([]models.WatchProgress, error)
	// DeleteProgress removes a record; absent records are not an error.
	DeleteProgress(userID uint, itemID string) error
	// Close closes the store
	Close() error
}
