package domain

import "time"

// AccessTokenResult is returned whenever a new session is issued.
type AccessTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// LoginResult pairs the authenticated user with the issued session.
type LoginResult struct {
	User    User
	Session AccessTokenResult
}
