package memory

import (
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires a full set of in-memory stores.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:               NewUserRepository(),
		NoteRepo:               NewNoteRepository(),
		RefreshTokenRepo:       NewTokenRepository(domain.TokenKindRefresh),
		EmailTokenRepo:         NewTokenRepository(domain.TokenKindEmailVerification),
		PasswordResetTokenRepo: NewTokenRepository(domain.TokenKindPasswordReset),
	}
}
