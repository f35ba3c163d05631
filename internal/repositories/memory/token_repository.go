package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
)

// TokenRepository is a dev-only store for one token kind.
type TokenRepository struct {
	kind   domain.TokenKind
	mu     sync.Mutex
	byID   map[string]domain.AuthToken
	byHash map[string]string // hash -> token id
}

func NewTokenRepository(kind domain.TokenKind) *TokenRepository {
	return &TokenRepository{
		kind:   kind,
		byID:   make(map[string]domain.AuthToken),
		byHash: make(map[string]string),
	}
}

var _ portsrepo.TokenRepository = (*TokenRepository)(nil)

func (r *TokenRepository) Kind() domain.TokenKind { return r.kind }

func (r *TokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byHash[token.TokenHash]; ok {
		return apperrors.ErrDuplicate
	}
	token.ID = uuid.NewString()
	token.Kind = r.kind
	token.CreatedAt = time.Now().UTC()
	r.byID[token.ID] = *token
	r.byHash[token.TokenHash] = token.ID
	return nil
}

func (r *TokenRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.AuthToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byHash[tokenHash]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t := r.byID[id]
	return &t, nil
}

func (r *TokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.AuthToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.AuthToken
	for _, t := range r.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteLocked(id)
	return nil
}

func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.byID {
		if t.UserID == userID {
			r.deleteLocked(id)
		}
	}
	return nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, t := range r.byID {
		if t.ExpiresAt.Before(before) {
			r.deleteLocked(id)
			n++
		}
	}
	return n, nil
}

// Len reports how many tokens are stored.
func (r *TokenRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *TokenRepository) deleteLocked(id string) {
	t, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byHash, t.TokenHash)
	delete(r.byID, id)
}
