package domain

import (
	"errors"
	"fmt"
)

// Domain-specific errors for better error handling and user feedback
var (
	// ErrMappingNotFound is returned when a short code has no mapping
	ErrMappingNotFound = errors.New("mapping not found")

	// ErrInvalidURL is returned when the provided long URL is invalid
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrInvalidShortCode is returned when a short code is empty or malformed
	ErrInvalidShortCode = errors.New("invalid short code")

	// ErrConflict is returned by the store when an insert violates the
	// uniqueness of either column. It is always resolved inside the
	// shortening service and never surfaces to callers.
	ErrConflict = errors.New("mapping conflicts with an existing row")

	// ErrCodeSpaceExhausted is returned when the bounded generate-and-insert
	// retry loop failed to find a free code
	ErrCodeSpaceExhausted = errors.New("could not allocate a free short code")

	// ErrStoreUnavailable is returned when the backing store cannot be reached
	ErrStoreUnavailable = errors.New("mapping store unavailable")
)

// AppError wraps errors with additional context for better debugging
type AppError struct {
	Err        error  // Original error
	Message    string // User-friendly message
	StatusCode int    // HTTP status code
	Internal   bool   // Whether to log as internal error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(shortCode string) *AppError {
	return &AppError{
		Err:        ErrMappingNotFound,
		Message:    fmt.Sprintf("no mapping for short code %q", shortCode),
		StatusCode: 404,
		Internal:   false,
	}
}

// NewValidationError creates a 400 validation error
func NewValidationError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: 400,
		Internal:   false,
	}
}

// NewInternalError creates a 500 internal server error
func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "Internal server error occurred",
		StatusCode: 500,
		Internal:   true, // Log this error
	}
}

// NewStoreError creates a 503 error for store connectivity failures.
// The original cause is kept for logs; callers only see a transient failure.
func NewStoreError(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %v", ErrStoreUnavailable, err),
		Message:    "Storage temporarily unavailable",
		StatusCode: 503,
		Internal:   true,
	}
}
