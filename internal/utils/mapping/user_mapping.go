package mapping

import (
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		Email:           d.Email,
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
		IsAdmin:         d.IsAdmin,
		IsEmailVerified: d.IsEmailVerified,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:          m.UserID,
		Email:           m.Email,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		IsAdmin:         m.IsAdmin,
		IsEmailVerified: m.IsEmailVerified,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
