// Package errors defines the application error type and the predefined
// errors exposed over the HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the standard application error. Error and Message are the
// wire fields the SPA contract fixes; Err carries the original cause for
// logs and is never serialized.
type AppError struct {
	HTTPStatus int    `json:"-"`
	ErrorLabel string `json:"error"`
	Message    string `json:"message"`

	// Extra role context so the client can render actionable UI
	// (switch-role dialog, contact-admin hint).
	RequiredRoles  []string `json:"requiredRoles,omitempty"`
	AvailableRoles []string `json:"availableRoles,omitempty"`

	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.ErrorLabel, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.ErrorLabel, e.Message)
}

// Unwrap exposes the original cause.
func (e *AppError) Unwrap() error { return e.Err }

// New creates an AppError.
func New(status int, label, message string) *AppError {
	return &AppError{HTTPStatus: status, ErrorLabel: label, Message: message}
}

// WithMessage returns a copy with a different message. Copies keep the
// package-level base errors immutable.
func (e *AppError) WithMessage(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithCause returns a copy carrying the original error for logging.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithRequiredRoles returns a copy carrying the route's required role set.
func (e *AppError) WithRequiredRoles(roles []string) *AppError {
	cp := *e
	cp.RequiredRoles = roles
	return &cp
}

// WithAvailableRoles returns a copy carrying the caller's assigned roles.
func (e *AppError) WithAvailableRoles(roles []string) *AppError {
	cp := *e
	cp.AvailableRoles = roles
	return &cp
}

// FromError converts any error to an AppError, defaulting to the generic
// 500 so internals never leak to clients.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrServerError.WithCause(err)
}

// Predefined errors. Messages keep the wording the SPA already localizes.

var (
	// 400
	ErrValidation  = New(http.StatusBadRequest, "Validation error", "Request tidak valid")
	ErrInvalidJSON = New(http.StatusBadRequest, "Validation error", "Body request bukan JSON yang valid")

	// 401
	ErrTokenMissing = New(http.StatusUnauthorized, "Unauthorized", "Token tidak ditemukan")
	ErrTokenInvalid = New(http.StatusUnauthorized, "Unauthorized", "Token tidak valid atau expired")

	// 403
	ErrProfileNotFound = New(http.StatusForbidden, "Forbidden", "Profile user tidak ditemukan")
	ErrAccessDenied    = New(http.StatusForbidden, "Access denied", "Role tidak memiliki akses ke resource ini")
	ErrInvalidRole     = New(http.StatusForbidden, "Invalid role", "Active role tidak valid untuk user ini")

	// 404
	ErrNotFound            = New(http.StatusNotFound, "Not found", "Resource tidak ditemukan")
	ErrProfileNotFoundBody = New(http.StatusNotFound, "Not found", "User profile not found")

	// 405
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "Method not allowed", "Method tidak diizinkan")

	// 429
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "Too many requests", "Terlalu banyak request, coba lagi nanti")

	// 500
	ErrServerError = New(http.StatusInternalServerError, "Server error", "Gagal memproses request")
)
