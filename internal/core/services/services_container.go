package services

import (
	"fmt"

	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/platform/config"
	"github.com/rurasogoodo/notes_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) (*portssvc.ServiceContainer, error) {
	signer, err := utils.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to build access token signer: %w", err)
	}
	hasher := utils.NewBcryptHasher(cfg.HasherWorkers, cfg.BcryptCost)

	container := &portssvc.ServiceContainer{Tokens: signer}

	container.Session = NewSessionService(
		repos.UserRepo,
		repos.RefreshTokenRepo,
		hasher,
		signer,
		SessionConfig{
			AccessTokenTTL:           cfg.JWTExpiryDuration,
			RefreshTokenTTL:          cfg.RefreshTokenExpiryDuration,
			RequireEmailVerification: cfg.RequireEmailVerification,
		},
	)

	container.Recovery = NewRecoveryService(
		repos.UserRepo,
		repos.EmailTokenRepo,
		repos.PasswordResetTokenRepo,
		hasher,
		notifier,
		RecoveryConfig{
			EmailTokenTTL:        cfg.EmailTokenExpiryDuration,
			PasswordTokenTTL:     cfg.PasswordTokenExpiryDuration,
			EmailVerificationURL: cfg.EmailVerificationURL,
			PasswordResetURL:     cfg.PasswordResetURL,
		},
	)

	container.Note = NewNoteService(repos.NoteRepo, repos.UserRepo)

	return container, nil
}
