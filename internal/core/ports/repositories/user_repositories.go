package repositories

import (
	"context"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// UserReader defines read operations for user data.
// Both finders return apperrors.ErrNotFound when no row matches.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. An email conflict yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// SetEmailVerified flips the verified flag on.
	SetEmailVerified(ctx context.Context, userID string) error

	// UpdatePasswordHash replaces the stored password digest.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
