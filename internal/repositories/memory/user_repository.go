package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
)

// UserRepository is a dev-only user store used when no database is configured.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> user id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return apperrors.ErrDuplicate
	}
	if _, ok := r.byID[user.UserID]; ok {
		return apperrors.ErrDuplicate
	}
	r.byID[user.UserID] = user
	r.byEmail[user.Email] = user.UserID
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, userID string) error {
	return r.update(ctx, userID, func(u *domain.User) { u.IsEmailVerified = true })
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	return r.update(ctx, userID, func(u *domain.User) { u.PasswordHash = passwordHash })
}

func (r *UserRepository) update(ctx context.Context, userID string, fn func(*domain.User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	r.byID[userID] = u
	return nil
}
