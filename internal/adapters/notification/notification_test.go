package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeList struct {
	key    string
	values [][]byte
	err    error
}

func (f *fakeList) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.key = key
	for _, v := range values {
		f.values = append(f.values, v.([]byte))
	}
	cmd.SetVal(int64(len(f.values)))
	return cmd
}

func resetNotification() domain.Notification {
	return domain.Notification{
		Template:  domain.TemplatePasswordReset,
		Recipient: "U@X.com",
		Username:  "<u>",
		Token:     "tok",
		Link:      "https://app.test/reset?token=tok",
	}
}

func TestRendererRendersBothTemplates(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	msg, err := r.Render(resetNotification())
	require.NoError(t, err)
	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Equal(t, "U@X.com", msg.To)
	assert.Contains(t, msg.TextBody, "Hi <u>,")
	assert.Contains(t, msg.TextBody, "u@x.com")
	assert.Contains(t, msg.TextBody, "https://app.test/reset?token=tok")
	assert.Contains(t, msg.HTMLBody, "Hi &lt;u&gt;,")

	msg, err = r.Render(domain.Notification{Template: domain.TemplateEmailVerification, Link: "https://app.test/v?token=a"})
	require.NoError(t, err)
	assert.Equal(t, "Verify your email address", msg.Subject)
	assert.Contains(t, msg.TextBody, "Hi there,")
}

func TestRendererRejectsUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render(domain.Notification{Template: "welcome"})
	assert.Error(t, err)
}

func TestRedisQueuePushesRenderedEnvelope(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	list := &fakeList{}
	queuedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	q := &RedisQueue{client: list, queue: "notes:notifications", renderer: r, now: func() time.Time { return queuedAt }}

	require.NoError(t, q.Send(context.Background(), resetNotification()))

	assert.Equal(t, "notes:notifications", list.key)
	require.Len(t, list.values, 1)
	var got envelope
	require.NoError(t, json.Unmarshal(list.values[0], &got))
	assert.Equal(t, domain.TemplatePasswordReset, got.Template)
	assert.Equal(t, "Reset your password", got.Subject)
	assert.True(t, queuedAt.Equal(got.QueuedAt))
	assert.NoError(t, q.Close())
}

func TestRedisQueueSurfacesPushError(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	q := &RedisQueue{client: &fakeList{err: errors.New("connection refused")}, queue: "q", renderer: r, now: time.Now}

	err = q.Send(context.Background(), resetNotification())
	assert.ErrorContains(t, err, "connection refused")
}

func TestNewRedisQueueRejectsBadURL(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = NewRedisQueue(context.Background(), "not-a-redis-url", "q", r)
	assert.Error(t, err)
}

func TestLogNotifierRenders(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	n := NewLogNotifier(r)

	assert.NoError(t, n.Send(context.Background(), resetNotification()))
	assert.Error(t, n.Send(context.Background(), domain.Notification{Template: "nope"}))
}
