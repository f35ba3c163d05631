package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/utils"
)

// SessionConfig holds the lifetimes and policy used when opening sessions.
type SessionConfig struct {
	AccessTokenTTL           time.Duration
	RefreshTokenTTL          time.Duration
	RequireEmailVerification bool
}

// sessionService implements the SessionSvc interface
type sessionService struct {
	BaseService
	users         portsrepo.UserRepositoryFacade
	refreshTokens portsrepo.TokenRepository
	hasher        portssvc.PasswordHasher
	issuer        portssvc.AccessTokenIssuer
	secrets       portssvc.SecretGenerator
	cfg           SessionConfig

	// decoyOnce guards decoyDigest, a digest at the hasher's cost compared
	// against when the login email is unknown.
	decoyOnce   sync.Once
	decoyDigest string
}

// SessionOption is a functional option for configuring the session service
type SessionOption func(*sessionService)

// WithSessionClock replaces the wall clock.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.Clock = now
	}
}

// WithSessionSecrets replaces the random secret source.
func WithSessionSecrets(g portssvc.SecretGenerator) SessionOption {
	return func(s *sessionService) {
		s.secrets = g
	}
}

// NewSessionService creates a new session service with the provided options
func NewSessionService(
	users portsrepo.UserRepositoryFacade,
	refreshTokens portsrepo.TokenRepository,
	hasher portssvc.PasswordHasher,
	issuer portssvc.AccessTokenIssuer,
	cfg SessionConfig,
	options ...SessionOption,
) portssvc.SessionSvc {
	svc := &sessionService{
		users:         users,
		refreshTokens: refreshTokens,
		hasher:        hasher,
		issuer:        issuer,
		secrets:       utils.RandomSecretGenerator{},
		cfg:           cfg,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SessionSvc = (*sessionService)(nil)

func (s *sessionService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.LoginResult, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	digest, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password during registration")
		return nil, err
	}

	now := s.Now()
	user := domain.User{
		UserID:          uuid.NewString(),
		Email:           normalizeEmail(req.Email),
		Username:        strings.TrimSpace(req.Username),
		PasswordHash:    digest,
		IsEmailVerified: !s.cfg.RequireEmailVerification,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("register: %w", err)
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{User: user, Session: *session}, nil
}

// compareDecoy spends one bcrypt comparison so unknown emails take as long as wrong passwords.
func (s *sessionService) compareDecoy(ctx context.Context, password string) {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash(context.WithoutCancel(ctx), "decoy-"+uuid.NewString())
		if err != nil {
			s.LogError(ctx, err, "Failed to build decoy digest")
			return
		}
		s.decoyDigest = digest
	})
	if s.decoyDigest == "" {
		return
	}
	_, _ = s.hasher.Verify(ctx, password, s.decoyDigest)
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.compareDecoy(ctx, password)
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("login: %w", err)
	}
	if !user.IsEmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		s.LogError(ctx, err, "Failed to verify password", slog.String("user_id", user.UserID))
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, *user)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &domain.LoginResult{User: *user, Session: *session}, nil
}

func (s *sessionService) Refresh(ctx context.Context, refreshToken string) (*domain.AccessTokenResult, error) {
	stored, err := s.refreshTokens.FindByHash(ctx, utils.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRefreshTokenOrUserNotFound
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	// Single use: the presented token is gone whatever happens next.
	if err := s.refreshTokens.Delete(ctx, stored.ID); err != nil {
		s.LogError(ctx, err, "Failed to delete presented refresh token", slog.String("user_id", stored.UserID))
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if stored.IsExpired(s.Now()) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	user, err := s.users.FindUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRefreshTokenOrUserNotFound
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return s.issueSession(ctx, *user)
}

func (s *sessionService) Logout(ctx context.Context, userID string) error {
	tokens, err := s.refreshTokens.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if len(tokens) == 0 {
		return apperrors.ErrRefreshTokenOrUserNotFound
	}
	for _, t := range tokens {
		if err := s.refreshTokens.Delete(ctx, t.ID); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", userID))
	return nil
}

func (s *sessionService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return user, nil
}

// issueSession replaces whatever refresh token the user had with a fresh one
// and signs a matching access token.
func (s *sessionService) issueSession(ctx context.Context, user domain.User) (*domain.AccessTokenResult, error) {
	if err := s.refreshTokens.DeleteByUserID(ctx, user.UserID); err != nil {
		s.LogError(ctx, err, "Failed to clear previous refresh tokens", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("issue session: %w", err)
	}

	secret, err := s.secrets.Generate()
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	now := s.Now()
	token := &domain.AuthToken{
		TokenHash: utils.HashToken(secret.Encoded),
		UserID:    user.UserID,
		ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.refreshTokens.Create(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("issue session: %w", err)
	}

	payload := domain.NewAccessTokenPayload(user, now, s.cfg.AccessTokenTTL)
	accessToken, err := s.issuer.Sign(payload)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, err
	}

	return &domain.AccessTokenResult{
		AccessToken:  accessToken,
		RefreshToken: secret.Encoded,
		ExpiresAt:    payload.ExpiresAt,
	}, nil
}
