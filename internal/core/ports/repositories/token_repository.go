package repositories

import (
	"context"
	"time"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// TokenRepository stores one kind of hashed single-use token.
// Separate instances back refresh, email-verification and password-reset tokens.
type TokenRepository interface {
	// Kind reports which token family this store holds.
	Kind() domain.TokenKind

	// Create persists a new token, filling in ID and CreatedAt.
	Create(ctx context.Context, token *domain.AuthToken) error

	// FindByHash retrieves a token by its SHA-256 hash; apperrors.ErrNotFound when absent.
	FindByHash(ctx context.Context, tokenHash string) (*domain.AuthToken, error)

	// FindByUserID retrieves the user's tokens, newest first.
	FindByUserID(ctx context.Context, userID string) ([]domain.AuthToken, error)

	// Delete removes a token by ID. Deleting an absent token is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID removes all tokens owned by the user.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired removes tokens that expired before the cutoff and reports how many.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
