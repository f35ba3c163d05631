package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:               newPgxUserRepository(dbPool),
		NoteRepo:               newPgxNoteRepository(dbPool),
		RefreshTokenRepo:       newPgxTokenRepository(dbPool, domain.TokenKindRefresh),
		EmailTokenRepo:         newPgxTokenRepository(dbPool, domain.TokenKindEmailVerification),
		PasswordResetTokenRepo: newPgxTokenRepository(dbPool, domain.TokenKindPasswordReset),
	}
}
