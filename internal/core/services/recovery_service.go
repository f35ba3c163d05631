package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/utils"
)

// RecoveryConfig holds token lifetimes and the URLs that links sent to users point at.
// The plaintext token is appended as the "token" query parameter.
type RecoveryConfig struct {
	EmailTokenTTL        time.Duration
	PasswordTokenTTL     time.Duration
	EmailVerificationURL string
	PasswordResetURL     string
}

// recoveryService implements the RecoverySvc interface
type recoveryService struct {
	BaseService
	users          portsrepo.UserRepositoryFacade
	emailTokens    portsrepo.TokenRepository
	passwordTokens portsrepo.TokenRepository
	hasher         portssvc.PasswordHasher
	secrets        portssvc.SecretGenerator
	notifier       portssvc.Notifier
	cfg            RecoveryConfig
}

// RecoveryOption is a functional option for configuring the recovery service
type RecoveryOption func(*recoveryService)

// WithRecoveryClock replaces the wall clock.
func WithRecoveryClock(now func() time.Time) RecoveryOption {
	return func(s *recoveryService) {
		s.Clock = now
	}
}

// WithRecoverySecrets replaces the random secret source.
func WithRecoverySecrets(g portssvc.SecretGenerator) RecoveryOption {
	return func(s *recoveryService) {
		s.secrets = g
	}
}

// NewRecoveryService creates a new recovery service with the provided options
func NewRecoveryService(
	users portsrepo.UserRepositoryFacade,
	emailTokens portsrepo.TokenRepository,
	passwordTokens portsrepo.TokenRepository,
	hasher portssvc.PasswordHasher,
	notifier portssvc.Notifier,
	cfg RecoveryConfig,
	options ...RecoveryOption,
) portssvc.RecoverySvc {
	svc := &recoveryService{
		users:          users,
		emailTokens:    emailTokens,
		passwordTokens: passwordTokens,
		hasher:         hasher,
		secrets:        utils.RandomSecretGenerator{},
		notifier:       notifier,
		cfg:            cfg,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecoverySvc = (*recoveryService)(nil)

// SendEmailVerification never reveals whether the address is registered.
func (s *recoveryService) SendEmailVerification(ctx context.Context, email string) error {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Verification requested for unknown email")
			return nil
		}
		return fmt.Errorf("send email verification: %w", err)
	}
	if user.IsEmailVerified {
		return nil
	}

	plain, err := s.issueToken(ctx, s.emailTokens, user.UserID, s.cfg.EmailTokenTTL)
	if err != nil {
		return fmt.Errorf("send email verification: %w", err)
	}
	s.notify(ctx, domain.Notification{
		Template:  domain.TemplateEmailVerification,
		Recipient: user.Email,
		Username:  user.Username,
		Token:     plain,
		Link:      link(s.cfg.EmailVerificationURL, plain),
	})
	return nil
}

func (s *recoveryService) VerifyEmail(ctx context.Context, token string) error {
	stored, err := s.emailTokens.FindByHash(ctx, utils.HashToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrEmailTokenNotFound
		}
		return fmt.Errorf("verify email: %w", err)
	}

	if err := s.emailTokens.Delete(ctx, stored.ID); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	if stored.IsExpired(s.Now()) {
		return apperrors.ErrEmailTokenExpired
	}

	if err := s.users.SetEmailVerified(ctx, stored.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("verify email: %w", err)
	}
	s.LogInfo(ctx, "Email verified", slog.String("user_id", stored.UserID))
	return nil
}

// RequestPasswordReset never reveals whether the address is registered.
func (s *recoveryService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("request password reset: %w", err)
	}

	plain, err := s.issueToken(ctx, s.passwordTokens, user.UserID, s.cfg.PasswordTokenTTL)
	if err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	s.notify(ctx, domain.Notification{
		Template:  domain.TemplatePasswordReset,
		Recipient: user.Email,
		Username:  user.Username,
		Token:     plain,
		Link:      link(s.cfg.PasswordResetURL, plain),
	})
	return nil
}

func (s *recoveryService) VerifyResetToken(ctx context.Context, token string) error {
	_, err := s.findLivePasswordToken(ctx, token)
	return err
}

func (s *recoveryService) RecoverAccount(ctx context.Context, req dto.RecoverAccountRequest) error {
	if req.Password != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	stored, err := s.findLivePasswordToken(ctx, req.Token)
	if err != nil {
		return err
	}

	digest, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password", slog.String("user_id", stored.UserID))
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, stored.UserID, digest); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("recover account: %w", err)
	}
	if err := s.passwordTokens.DeleteByUserID(ctx, stored.UserID); err != nil {
		return fmt.Errorf("recover account: %w", err)
	}
	s.LogInfo(ctx, "Password reset completed", slog.String("user_id", stored.UserID))
	return nil
}

// findLivePasswordToken resolves a reset token, deleting it if it has expired.
func (s *recoveryService) findLivePasswordToken(ctx context.Context, token string) (*domain.AuthToken, error) {
	stored, err := s.passwordTokens.FindByHash(ctx, utils.HashToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidPasswordToken
		}
		return nil, fmt.Errorf("find password token: %w", err)
	}
	if stored.IsExpired(s.Now()) {
		if err := s.passwordTokens.Delete(ctx, stored.ID); err != nil {
			return nil, fmt.Errorf("find password token: %w", err)
		}
		return nil, apperrors.ErrPasswordTokenExpired
	}
	return stored, nil
}

// issueToken supersedes the user's outstanding tokens in store and returns the new plaintext.
func (s *recoveryService) issueToken(ctx context.Context, store portsrepo.TokenRepository, userID string, ttl time.Duration) (string, error) {
	if err := store.DeleteByUserID(ctx, userID); err != nil {
		return "", err
	}
	secret, err := s.secrets.Generate()
	if err != nil {
		return "", err
	}
	token := &domain.AuthToken{
		TokenHash: utils.HashToken(secret.Encoded),
		UserID:    userID,
		ExpiresAt: s.Now().Add(ttl),
	}
	if err := store.Create(ctx, token); err != nil {
		return "", err
	}
	return secret.Encoded, nil
}

// notify dispatches n; a failed dispatch is logged and otherwise ignored.
func (s *recoveryService) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to dispatch notification", slog.String("template", string(n.Template)))
	}
}

func link(base, token string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + url.QueryEscape(token)
}
