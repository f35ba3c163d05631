package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// payloadKey is the key under which the verified access token payload is stored.
const payloadKey = contextKey("accessPayload")

// WithPayload returns a copy of ctx carrying the authenticated payload.
func WithPayload(ctx context.Context, payload *domain.AccessTokenPayload) context.Context {
	return context.WithValue(ctx, payloadKey, payload)
}

// GetPayloadFromCtx returns the authenticated payload, if any.
func GetPayloadFromCtx(ctx context.Context) (*domain.AccessTokenPayload, bool) {
	p, ok := ctx.Value(payloadKey).(*domain.AccessTokenPayload)
	return p, ok && p != nil
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	p, ok := GetPayloadFromCtx(c.Request.Context())
	if !ok {
		return "", false
	}
	return p.UserID, true
}
