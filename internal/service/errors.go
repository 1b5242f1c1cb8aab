package service

import (
	"errors"
	"fmt"
	"time"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is().
var (
	// ErrRateLimited indicates a per-user action quota was exhausted.
	// The API layer should map this to HTTP 429 Too Many Requests.
	// It is usually carried inside a RateLimitError, which adds the
	// retry-after duration.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnknownAction indicates admission control was asked about an
	// action kind it has no quota configured for. This is a wiring bug,
	// not a user-facing condition.
	ErrUnknownAction = errors.New("unknown admission action")
)

// RateLimitError reports an exhausted quota together with how long the
// caller must wait before the window resets.
type RateLimitError struct {
	Action     string
	RetryAfter time.Duration
}

// Error implements the error interface for RateLimitError.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf(
		"rate limit exceeded for action %q: retry after %s",
		e.Action,
		e.RetryAfter,
	)
}

// Unwrap lets errors.Is(err, ErrRateLimited) match a RateLimitError.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
