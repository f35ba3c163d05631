package domain

import "time"

// TokenKind distinguishes the three server-stored token families.
// Each kind lives in its own store.
type TokenKind string

const (
	TokenKindRefresh           TokenKind = "refresh"
	TokenKindEmailVerification TokenKind = "email_verification"
	TokenKindPasswordReset     TokenKind = "password_reset"
)

// AuthToken is a server-stored, single-use secret addressed by its SHA-256 hash.
// The plaintext is handed to the client once and never persisted.
type AuthToken struct {
	ID        string    `json:"id"`
	Kind      TokenKind `json:"kind"`
	TokenHash string    `json:"-"`
	UserID    string    `json:"userID"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsExpired reports whether the token's expiry is at or before now.
func (t *AuthToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Secret is freshly generated random material and its URL-safe text form.
type Secret struct {
	Raw     []byte
	Encoded string
}
