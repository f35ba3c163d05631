package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
)

// TokenSweeper periodically purges tokens that expired more than Grace ago.
// Recently expired tokens are left for the request path, which reports them as expired before deleting.
type TokenSweeper struct {
	BaseService
	Stores   []portsrepo.TokenRepository
	Interval time.Duration
	Grace    time.Duration
	Logger   *slog.Logger
}

// SweepOnce purges every store once and returns the number of rows removed.
func (w *TokenSweeper) SweepOnce(ctx context.Context) int64 {
	cutoff := w.Now().Add(-w.Grace)
	var total int64
	for _, store := range w.Stores {
		n, err := store.DeleteExpired(ctx, cutoff)
		if err != nil {
			w.logger().Error("Failed to purge expired tokens",
				slog.String("kind", string(store.Kind())),
				slog.String("error", err.Error()))
			continue
		}
		total += n
	}
	if total > 0 {
		w.logger().Info("Purged expired tokens", slog.Int64("count", total))
	}
	return total
}

// Run sweeps every Interval until ctx is cancelled. A non-positive Interval disables it.
func (w *TokenSweeper) Run(ctx context.Context) {
	if w.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.SweepOnce(ctx)
		}
	}
}

func (w *TokenSweeper) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
