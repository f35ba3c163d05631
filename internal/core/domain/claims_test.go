package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenPayloadVerify(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := User{UserID: "u-1", Username: "u", Email: "u@x.com", IsAdmin: true}

	payload := NewAccessTokenPayload(user, now, 15*time.Minute)

	assert.Equal(t, "u-1", payload.UserID)
	assert.True(t, payload.IsAdmin)
	assert.Equal(t, now.Add(15*time.Minute), payload.ExpiresAt)

	assert.NoError(t, payload.Verify(now))
	assert.NoError(t, payload.Verify(now.Add(14*time.Minute)))
	assert.ErrorIs(t, payload.Verify(now.Add(15*time.Minute)), ErrAccessTokenExpired)
	assert.ErrorIs(t, payload.Verify(now.Add(time.Hour)), ErrAccessTokenExpired)
}

func TestAuthTokenIsExpired(t *testing.T) {
	now := time.Now()
	tok := AuthToken{ExpiresAt: now.Add(time.Second)}
	assert.False(t, tok.IsExpired(now))
	assert.True(t, tok.IsExpired(now.Add(time.Second)))
}

func TestUserToPublicDropsCredentials(t *testing.T) {
	u := User{UserID: "id", Username: "name", Email: "e@x.com", PasswordHash: "hash"}
	assert.Equal(t, Public{UserID: "id", Username: "name", Email: "e@x.com"}, u.ToPublic())
}
