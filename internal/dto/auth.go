package dto

import (
	"time"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required,min=3,max=64"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AccessTokenRequest is the body of POST /api/auth/accessToken.
type AccessTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// EmailRequest is the body of the endpoints that only need an address.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RecoverAccountRequest is the body of POST /api/auth/recover.
type RecoverAccountRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// TokenQuery binds the ?token= parameter of the verification links.
type TokenQuery struct {
	Token string `form:"token" binding:"required"`
}

// AccessTokenResponse carries a freshly issued session.
type AccessTokenResponse struct {
	RefreshToken string    `json:"refreshToken"`
	AccessToken  string    `json:"accessToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// LoginResponse represents the response for a successful login or registration.
type LoginResponse struct {
	User        UserResponse        `json:"user"`
	AccessToken AccessTokenResponse `json:"accessToken"`
}

// ToAccessTokenResponse converts a domain session to its wire form.
func ToAccessTokenResponse(r domain.AccessTokenResult) AccessTokenResponse {
	return AccessTokenResponse{
		RefreshToken: r.RefreshToken,
		AccessToken:  r.AccessToken,
		ExpiresAt:    r.ExpiresAt,
	}
}

// ToLoginResponse converts a domain login result to its wire form.
func ToLoginResponse(r *domain.LoginResult) LoginResponse {
	return LoginResponse{
		User:        ToUserResponse(&r.User),
		AccessToken: ToAccessTokenResponse(r.Session),
	}
}
