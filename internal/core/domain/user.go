package domain

import "time"

// User represents a registered account in the domain.
type User struct {
	UserID          string    `json:"userID"` // Primary Key (UUID)
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"`
	IsAdmin         bool      `json:"isAdmin"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Public is the subset of a user that may be returned to any client.
type Public struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToPublic strips credentials and flags from the user.
func (u User) ToPublic() Public {
	return Public{UserID: u.UserID, Username: u.Username, Email: u.Email}
}
