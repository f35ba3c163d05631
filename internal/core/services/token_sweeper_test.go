package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/core/services"
	"github.com/rurasogoodo/notes_app/internal/repositories/memory"
	"github.com/rurasogoodo/notes_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSweeperRemovesOnlyTokensPastGrace(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repos := memory.NewRepositoryProvider()

	seed := func(plain string, expiresAt time.Time) {
		require.NoError(t, repos.EmailTokenRepo.Create(ctx, &domain.AuthToken{
			TokenHash: utils.HashToken(plain),
			UserID:    "u",
			ExpiresAt: expiresAt,
		}))
	}
	seed("long-gone", clock.Now().Add(-2*time.Hour))
	seed("just-expired", clock.Now().Add(-time.Minute))
	seed("live", clock.Now().Add(time.Hour))
	require.NoError(t, repos.RefreshTokenRepo.Create(ctx, &domain.AuthToken{
		TokenHash: utils.HashToken("old-refresh"),
		UserID:    "u",
		ExpiresAt: clock.Now().Add(-48 * time.Hour),
	}))

	sweeper := &services.TokenSweeper{
		BaseService: services.BaseService{Clock: clock.Now},
		Stores:      repos.TokenRepos(),
		Grace:       time.Hour,
	}

	assert.Equal(t, int64(2), sweeper.SweepOnce(ctx))
	assert.Equal(t, int64(0), sweeper.SweepOnce(ctx))

	_, err := repos.EmailTokenRepo.FindByHash(ctx, utils.HashToken("long-gone"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repos.EmailTokenRepo.FindByHash(ctx, utils.HashToken("just-expired"))
	assert.NoError(t, err)
	_, err = repos.EmailTokenRepo.FindByHash(ctx, utils.HashToken("live"))
	assert.NoError(t, err)
	assert.Equal(t, 0, repos.RefreshTokenRepo.(*memory.TokenRepository).Len())
}

func TestTokenSweeperRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sweeper := &services.TokenSweeper{
		Stores:   memory.NewRepositoryProvider().TokenRepos(),
		Interval: time.Millisecond,
	}

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
