package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sparkmatch/spark-api/internal/api/shared"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/service"
	"github.com/sparkmatch/spark-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "rate limit",
			err:  &service.RateLimitError{Action: service.ActionSwipe, RetryAfter: time.Minute},
			want: http.StatusTooManyRequests,
		},
		{
			name: "wrapped rate limit",
			err:  service.NewSwipeServiceError("like", "quota", &service.RateLimitError{}),
			want: http.StatusTooManyRequests,
		},
		{
			name: "unauthorized",
			err:  service.NewMatchServiceError("deactivate", "not a member", domain.ErrUnauthorized),
			want: http.StatusForbidden,
		},
		{
			name: "profile not found",
			err:  store.ErrProfileNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "wrapped match not found",
			err:  service.NewMatchServiceError("deactivate", "gone", store.ErrMatchNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "self swipe",
			err:  domain.ErrSwipeSelf,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid entity",
			err:  store.ErrInvalidEntity,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown error",
			err:  errors.New("something exploded"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessageNeverEchoesInternals(t *testing.T) {
	internal := errors.New("pq: connection to 10.0.0.3:5432 refused")
	wrapped := service.NewSwipeServiceError("like", "failed to save swipe", internal)

	msg := GetSafeErrorMessage(wrapped)
	assert.NotContains(t, msg, "10.0.0.3")
	assert.Equal(t, "An unexpected error occurred", msg)
}

func TestGetSafeErrorMessageRateLimitIncludesRetryAfter(t *testing.T) {
	err := &service.RateLimitError{Action: service.ActionSwipe, RetryAfter: 42 * time.Second}
	assert.Equal(t, "Rate limit exceeded, retry after 42 seconds", GetSafeErrorMessage(err))
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.Validate.Struct(LikeRequest{FromUserID: "alice"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Invalid ToUserID")
	assert.NotContains(t, msg, "LikeRequest")
}
