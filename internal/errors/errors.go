package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBadRequest is the class of missing or invalid input.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized is the class of missing, invalid or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when an update target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique record already exists.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is returned for any failed login, whichever field was wrong.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	// ErrInvalidSession is returned when the session cookie is absent, malformed or expired.
	ErrInvalidSession = fmt.Errorf("invalid or expired session: %w", ErrUnauthorized)
	// ErrAdminExists is returned by admin initialization when the username is taken.
	ErrAdminExists = fmt.Errorf("admin already exists: %w", ErrConflict)
)

// ValidationError carries a human readable reason for a rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap makes ValidationError match ErrBadRequest.
func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NotFound wraps ErrNotFound with the kind of record that was missing.
func NotFound(kind string) error {
	return fmt.Errorf("%s %w", kind, ErrNotFound)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// IsInternal reports whether err maps to a 500.
func IsInternal(err error) bool {
	return MapErrorToHTTP(err).StatusCode == http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy becomes a generic 500 so store details never reach the caller.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrAdminExists):
		return NewHTTPError(http.StatusConflict, "admin already exists", "ADMIN_EXISTS")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, "conflict", "CONFLICT")
	case errors.Is(err, ErrBadRequest):
		return NewHTTPError(http.StatusBadRequest, "bad request", "BAD_REQUEST")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
