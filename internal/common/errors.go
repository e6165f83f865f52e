// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound          = errors.New("not found")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Session errors.
	ErrUnauthenticated = errors.New("not signed in")

	// API errors.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCartRejected       = errors.New("cart request rejected")

	// Cart errors.
	ErrEmptyCart      = errors.New("no items selected")
	ErrSubmitInFlight = errors.New("a cart submission is already in progress")

	// Routing errors.
	ErrRouteUnavailable = errors.New("route not available in this client")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the message meant for the user, falling back to the error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// StatusError carries the HTTP status of a failed API call.
type StatusError struct {
	Err        error
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%v: %d - %s", e.Err, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%v: %d", e.Err, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == 429
	}

	if errors.Is(err, ErrRateLimit) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
