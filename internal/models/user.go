package models

import "time"

// User is the users table row.
type User struct {
	UserID          string    `db:"user_id"`
	Email           string    `db:"email"`
	Username        string    `db:"username"`
	PasswordHash    string    `db:"password_hash"`
	IsAdmin         bool      `db:"is_admin"`
	IsEmailVerified bool      `db:"is_email_verified"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
