package utils

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(2, bcrypt.MinCost)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "p1-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "p1-secret", digest)

	ok, err := h.Verify(ctx, "p1-secret", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "wrong", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherRejectsOverlongPasswordAsValidation(t *testing.T) {
	h := NewBcryptHasher(1, bcrypt.MinCost)

	_, err := h.Hash(context.Background(), strings.Repeat("a", 73))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 400, apperrors.StatusCode(err))

	_, err = h.Hash(context.Background(), strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestBcryptHasherVerifyMalformedDigest(t *testing.T) {
	h := NewBcryptHasher(1, bcrypt.MinCost)

	ok, err := h.Verify(context.Background(), "p1", "not-a-bcrypt-digest")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherHonoursCancelledContextWhileWaiting(t *testing.T) {
	h := NewBcryptHasher(1, bcrypt.MinCost)
	// Occupy the only slot.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "p1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewBcryptHasherDefaults(t *testing.T) {
	h := NewBcryptHasher(0, 99)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
