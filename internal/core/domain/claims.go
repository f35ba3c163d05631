package domain

import (
	"errors"
	"time"
)

// ErrAccessTokenExpired is returned by AccessTokenPayload.Verify once the expiry has passed.
var ErrAccessTokenExpired = errors.New("access token has expired")

// AccessTokenPayload is the set of claims carried by a signed access token.
// It is never persisted and cannot be revoked before its expiry.
type AccessTokenPayload struct {
	UserID    string
	Username  string
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
}

// NewAccessTokenPayload builds the claims for user expiring ttl after now.
func NewAccessTokenPayload(user User, now time.Time, ttl time.Duration) AccessTokenPayload {
	return AccessTokenPayload{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: now.Add(ttl),
	}
}

// Verify checks the only claim that matters beyond the signature: expiry.
func (p AccessTokenPayload) Verify(now time.Time) error {
	if !now.Before(p.ExpiresAt) {
		return ErrAccessTokenExpired
	}
	return nil
}
