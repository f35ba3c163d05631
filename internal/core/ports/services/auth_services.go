package services

import (
	"context"
	"time"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/dto"
)

// SessionSvc covers registration, credential login and the refresh-token lifecycle.
type SessionSvc interface {
	// Register creates an account and immediately opens a session for it.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.LoginResult, error)

	// Login authenticates by email and password.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)

	// Refresh exchanges a single-use refresh token for a new session.
	Refresh(ctx context.Context, refreshToken string) (*domain.AccessTokenResult, error)

	// Logout removes the user's live refresh token.
	Logout(ctx context.Context, userID string) error

	// GetCurrentUser loads the authenticated user's record.
	GetCurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// RecoverySvc covers email verification and password reset.
type RecoverySvc interface {
	SendEmailVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) error
	RecoverAccount(ctx context.Context, req dto.RecoverAccountRequest) error
}

// PasswordHasher produces and checks slow password digests.
// Implementations may run the work off the calling goroutine and honour ctx while waiting.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

// AccessTokenIssuer signs and parses access tokens.
type AccessTokenIssuer interface {
	Sign(payload domain.AccessTokenPayload) (string, error)
	Parse(token string, now time.Time) (*domain.AccessTokenPayload, error)
}

// SecretGenerator yields cryptographically random token material.
type SecretGenerator interface {
	Generate() (domain.Secret, error)
}

// Notifier delivers a notification asynchronously; errors only mean the message was not queued.
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}
