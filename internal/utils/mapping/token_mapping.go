package mapping

import (
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/models"
)

// ToModelAuthToken converts a domain AuthToken to a model AuthToken
func ToModelAuthToken(d domain.AuthToken) models.AuthToken {
	return models.AuthToken{
		ID:        d.ID,
		UserID:    d.UserID,
		TokenHash: d.TokenHash,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainAuthToken converts a model AuthToken to a domain AuthToken of the given kind.
func ToDomainAuthToken(m models.AuthToken, kind domain.TokenKind) domain.AuthToken {
	return domain.AuthToken{
		ID:        m.ID,
		Kind:      kind,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}
