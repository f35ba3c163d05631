package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/middleware"
)

// listPusher is the subset of the redis client the queue needs.
type listPusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// envelope is the JSON document pushed onto the queue.
type envelope struct {
	Message
	QueuedAt time.Time `json:"queuedAt"`
}

// RedisQueue pushes rendered messages onto a Redis list consumed by a mail worker.
type RedisQueue struct {
	client   listPusher
	closer   func() error
	queue    string
	renderer *Renderer
	now      func() time.Time
}

// NewRedisQueue connects to redisURL and verifies the connection.
func NewRedisQueue(ctx context.Context, redisURL, queue string, renderer *Renderer) (*RedisQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQueue{
		client:   rdb,
		closer:   rdb.Close,
		queue:    queue,
		renderer: renderer,
		now:      time.Now,
	}, nil
}

var _ portssvc.Notifier = (*RedisQueue)(nil)

func (q *RedisQueue) Send(ctx context.Context, n domain.Notification) error {
	msg, err := q.renderer.Render(n)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope{Message: msg, QueuedAt: q.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := q.client.LPush(ctx, q.queue, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Notification queued",
		slog.String("queue", q.queue),
		slog.String("template", string(msg.Template)))
	return nil
}

func (q *RedisQueue) Close() error {
	if q.closer == nil {
		return nil
	}
	return q.closer()
}
