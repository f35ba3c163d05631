package dto

import (
	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	p := u.ToPublic()
	return UserResponse{
		UserID:   p.UserID,
		Username: p.Username,
		Email:    p.Email,
	}
}
