package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/service"
	"github.com/sparkmatch/spark-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Quota errors
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrSwipeSelf),
		errors.Is(err, domain.ErrSwipeFromEmpty),
		errors.Is(err, domain.ErrSwipeToEmpty),
		errors.Is(err, domain.ErrSwipeActionInvalid),
		errors.Is(err, domain.ErrMatchSamePair),
		errors.Is(err, domain.ErrMatchUserEmpty):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrRateLimited):
		var rateLimited *service.RateLimitError
		if errors.As(err, &rateLimited) {
			return fmt.Sprintf(
				"Rate limit exceeded, retry after %d seconds",
				int(rateLimited.RetryAfter.Seconds()),
			)
		}
		return "Rate limit exceeded"

	case errors.Is(err, domain.ErrUnauthorized):
		return "You are not part of this match"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, store.ErrMatchNotFound):
		return "Match not found"

	case errors.Is(err, store.ErrSwipeNotFound):
		return "Swipe not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, domain.ErrSwipeSelf):
		return "You cannot swipe on yourself"

	case errors.Is(err, domain.ErrMatchSamePair):
		return "A match requires two distinct users"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrSwipeFromEmpty),
		errors.Is(err, domain.ErrSwipeToEmpty),
		errors.Is(err, domain.ErrSwipeActionInvalid),
		errors.Is(err, domain.ErrMatchUserEmpty):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LikeRequest.FromUserID' Error:Field validation
	// for 'FromUserID' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "nefield":
		return "must differ from the other field"
	default:
		return "validation failed"
	}
}
