package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Kind identifies an authentication or domain failure independently of its message.
type Kind string

const (
	KindPasswordMismatch           Kind = "PasswordMismatch"
	KindEmailAlreadyExists         Kind = "EmailAlreadyExists"
	KindInvalidCredentials         Kind = "InvalidCredentials"
	KindEmailNotVerified           Kind = "EmailNotVerified"
	KindUserNotFound               Kind = "UserNotFound"
	KindRefreshTokenOrUserNotFound Kind = "RefreshTokenOrUserNotFound"
	KindRefreshTokenExpired        Kind = "RefreshTokenExpired"
	KindEmailTokenNotFound         Kind = "EmailTokenNotFound"
	KindEmailTokenExpired          Kind = "EmailTokenExpired"
	KindInvalidPasswordToken       Kind = "InvalidPasswordToken"
	KindPasswordTokenExpired       Kind = "PasswordTokenExpired"
	KindNoteNotFound               Kind = "NoteNotFound"
	KindValidation                 Kind = "ValidationFailed"
	KindConflict                   Kind = "Conflict"
	KindInternal                   Kind = "Internal"
)

// AppError carries an HTTP status code and a stable kind alongside the wrapped cause.
type AppError struct {
	Code    int
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by kind, so wrapped copies of a sentinel still compare equal.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind != "" && t.Kind == e.Kind
}

// NewAppError builds an internal error with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Kind: KindInternal, Message: message, Err: err}
}

// NewConflictError reports a uniqueness conflict; it unwraps to ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError reports bad input; it unwraps to ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message, Err: ErrValidation}
}

func newKindError(code int, kind Kind, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message}
}

// Authentication and recovery failures.
var (
	ErrPasswordMismatch           = newKindError(http.StatusBadRequest, KindPasswordMismatch, "passwords did not match")
	ErrEmailAlreadyExists         = newKindError(http.StatusBadRequest, KindEmailAlreadyExists, "a user with that email already exists")
	ErrInvalidCredentials         = newKindError(http.StatusUnauthorized, KindInvalidCredentials, "invalid email or password")
	ErrEmailNotVerified           = newKindError(http.StatusUnauthorized, KindEmailNotVerified, "email is not verified")
	ErrUserNotFound               = newKindError(http.StatusNotFound, KindUserNotFound, "user not found")
	ErrRefreshTokenOrUserNotFound = newKindError(http.StatusNotFound, KindRefreshTokenOrUserNotFound, "refresh token or user not found")
	ErrRefreshTokenExpired        = newKindError(http.StatusUnauthorized, KindRefreshTokenExpired, "refresh token has expired")
	ErrEmailTokenNotFound         = newKindError(http.StatusNotFound, KindEmailTokenNotFound, "email verification token not found")
	ErrEmailTokenExpired          = newKindError(http.StatusGone, KindEmailTokenExpired, "email verification token has expired")
	ErrInvalidPasswordToken       = newKindError(http.StatusNotFound, KindInvalidPasswordToken, "invalid password reset token")
	ErrPasswordTokenExpired       = newKindError(http.StatusGone, KindPasswordTokenExpired, "password reset token has expired")
	ErrNoteNotFound               = newKindError(http.StatusNotFound, KindNoteNotFound, "note not found")
)

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind carried by err, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}
	return KindInternal
}
