package models

import "time"

// AuthToken is a row in one of the refresh_tokens, email_tokens or password_tokens tables.
// All three share this layout.
type AuthToken struct {
	ID        string    `db:"token_id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
