package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/middleware"
	"github.com/rurasogoodo/notes_app/internal/platform/observability"
)

// respondBindError answers a request whose body or query failed to bind.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[lowerFirst(fe.Field())] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  "Invalid request",
			Reason: string(apperrors.KindValidation),
			Fields: fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:  "Invalid request format",
		Reason: string(apperrors.KindValidation),
	})
}

// respondError maps a service error to its status code. action names what failed, for 5xx bodies.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	kind := apperrors.KindOf(err)

	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		observability.CaptureError(err, c.Request.Method, c.FullPath(), c.Writer.Header().Get("X-Request-ID"))
		c.JSON(status, dto.ErrorResponse{Error: "Failed to " + action, Reason: string(apperrors.KindInternal)})
		return
	}

	if status == http.StatusUnauthorized || status == http.StatusGone {
		middleware.RecordAuthFailure(string(kind))
	}
	logger.Warn("Request rejected", slog.String("kind", string(kind)), slog.String("error", err.Error()))

	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	body := dto.ErrorResponse{Error: msg}
	if kind != apperrors.KindInternal {
		body.Reason = string(kind)
	}
	c.JSON(status, body)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed on " + fe.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
