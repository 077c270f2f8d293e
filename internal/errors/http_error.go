package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// ConflictError means a booking lost the race for a slot (or the slot was
// stale when the client picked it). Retryable: the client should re-fetch slots.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflict(msg string) *ConflictError { return &ConflictError{Message: msg} }

// NotFoundError means a referenced service, professional or tenant does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFound(msg string) *NotFoundError { return &NotFoundError{Message: msg} }

// ValidationError means malformed input: empty name, invalid contact, bad date.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(msg string) *ValidationError { return &ValidationError{Message: msg} }

func IsConflict(err error) bool {
	var ce *ConflictError
	return stderrors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return stderrors.As(err, &ne)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// StatusCode maps a service error to the HTTP status the handler should return.
func StatusCode(err error) int {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he.Code
	}
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
