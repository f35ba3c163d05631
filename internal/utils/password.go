package utils

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// BcryptHasher runs bcrypt on a bounded pool so slow hashing cannot starve request goroutines.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher builds a hasher allowing at most workers concurrent bcrypt calls.
// Non-positive workers defaults to GOMAXPROCS; an out-of-range cost falls back to bcrypt.DefaultCost.
func NewBcryptHasher(workers int, cost int) *BcryptHasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, sem: semaphore.NewWeighted(int64(workers))}
}

// Hash returns the bcrypt digest of plaintext.
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	var digest []byte
	err := h.run(ctx, func() error {
		var err error
		digest, err = bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		return err
	})
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewValidationFailedError("password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A mismatch is not an error.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	var match bool
	err := h.run(ctx, func() error {
		cmpErr := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
		switch {
		case cmpErr == nil:
			match = true
		case errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword):
			match = false
		default:
			return cmpErr
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
	return match, nil
}

// run executes fn on its own goroutine once a pool slot is free.
// The caller stops waiting when ctx ends; a started hash still runs to completion and releases its slot.
func (h *BcryptHasher) run(ctx context.Context, fn func() error) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		defer h.sem.Release(1)
		done <- fn()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
