package observability

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/middleware"
)

// RecoverMiddleware turns panics into a 500 response and reports them to Sentry.
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				sentry.WithScope(func(scope *sentry.Scope) {
					scope.SetExtra("panic", rec)
					scope.SetExtra("stack", string(debug.Stack()))
					scope.SetTag("http.path", c.FullPath())
					sentry.CaptureMessage("panic in request")
				})

				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Panic recovered",
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
					slog.Any("panic", rec))

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:  "Internal server error",
					Reason: string(apperrors.KindInternal),
				})
			}
		}()

		c.Next()
	}
}
