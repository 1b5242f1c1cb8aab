package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/events"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
)

// Action kinds gated by admission control. Each has an independent quota
// window per user.
const (
	ActionSwipe     = "swipe"
	ActionSuperLike = "super_like"
)

// Quota describes the allowance for one action kind: at most Limit
// consumptions per rolling fixed Window.
type Quota struct {
	Limit  int64
	Window time.Duration
}

// Decision is the outcome of one admission check. When Allowed is false,
// RetryAfter says how long until the user's window resets.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// QuotaCounter is the centralized per-user action counter. Incr atomically
// bumps the counter for (userID, action), starting the window on first use,
// and returns the new count plus the time left in the window.
type QuotaCounter interface {
	Incr(ctx context.Context, userID, action string, window time.Duration) (int64, time.Duration, error)
}

// AdmissionController gates user actions against per-action quotas.
type AdmissionController interface {
	// TryConsume spends one unit of the user's quota for the given action
	// and reports whether the action may proceed. A denial from the
	// centralized counter is authoritative; a failure to *reach* the
	// counter is not a denial, and the check degrades to an in-process
	// counter instead of blocking the action outright.
	TryConsume(ctx context.Context, userID, action string) (Decision, error)
}

// AdmissionFallbackPayload is the event body published when the centralized
// counter is unreachable and a check is served from the local counter.
type AdmissionFallbackPayload struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// admissionControllerImpl implements AdmissionController over a centralized
// counter with a degrade-open local fallback.
type admissionControllerImpl struct {
	counter  QuotaCounter
	quotas   map[string]Quota
	fallback *localCounter
	sink     events.Sink
	logger   *slog.Logger
}

// NewAdmissionController creates an AdmissionController enforcing the given
// per-action quotas. It returns an error if any required dependency is nil
// or a quota is malformed.
func NewAdmissionController(
	counter QuotaCounter,
	quotas map[string]Quota,
	sink events.Sink,
	log *slog.Logger,
) (AdmissionController, error) {
	if counter == nil {
		return nil, domain.NewValidationError("counter", "cannot be nil", domain.ErrValidation)
	}
	if sink == nil {
		return nil, domain.NewValidationError("sink", "cannot be nil", domain.ErrValidation)
	}
	if len(quotas) == 0 {
		return nil, domain.NewValidationError("quotas", "cannot be empty", domain.ErrValidation)
	}
	for action, q := range quotas {
		if q.Limit <= 0 || q.Window <= 0 {
			return nil, domain.NewValidationError(
				"quotas",
				fmt.Sprintf("quota for %q must have positive limit and window", action),
				domain.ErrValidation,
			)
		}
	}

	if log == nil {
		log = slog.Default()
	}

	return &admissionControllerImpl{
		counter:  counter,
		quotas:   quotas,
		fallback: newLocalCounter(),
		sink:     sink,
		logger:   log.With(slog.String("component", "admission_controller")),
	}, nil
}

// TryConsume implements AdmissionController.
func (c *admissionControllerImpl) TryConsume(
	ctx context.Context,
	userID, action string,
) (Decision, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	quota, ok := c.quotas[action]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	count, ttl, err := c.counter.Incr(ctx, userID, action, quota.Window)
	if err != nil {
		// The counter being unreachable must not translate into a false
		// denial. Serve the check from the in-process counter and record
		// that we did.
		log.Warn("quota counter unreachable, using local fallback",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.String("action", action))
		c.emitFallback(ctx, userID, action, err)
		count, ttl = c.fallback.incr(userID, action, quota.Window)
	}

	if count > quota.Limit {
		log.Info("action denied by quota",
			slog.String("user_id", userID),
			slog.String("action", action),
			slog.Int64("count", count),
			slog.Int64("limit", quota.Limit))
		return Decision{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}

	return Decision{Allowed: true, Remaining: quota.Limit - count}, nil
}

func (c *admissionControllerImpl) emitFallback(ctx context.Context, userID, action string, cause error) {
	event, err := events.NewEvent(events.TypeAdmissionFallback, AdmissionFallbackPayload{
		UserID: userID,
		Action: action,
		Reason: cause.Error(),
	})
	if err == nil {
		err = c.sink.Emit(ctx, event)
	}
	if err != nil {
		c.logger.Error("failed to emit admission fallback event",
			slog.String("error", err.Error()))
	}
}

// localCounter is the in-process fixed-window counter used while the
// centralized counter is unreachable. Windows are tracked per (user, action)
// and reset lazily on the first increment after expiry.
type localCounter struct {
	mu      sync.Mutex
	windows map[string]*localWindow
	now     func() time.Time
}

type localWindow struct {
	count   int64
	resetAt time.Time
}

func newLocalCounter() *localCounter {
	return &localCounter{
		windows: make(map[string]*localWindow),
		now:     time.Now,
	}
}

func (l *localCounter) incr(userID, action string, window time.Duration) (int64, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := action + ":" + userID
	now := l.now()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &localWindow{resetAt: now.Add(window)}
		l.windows[key] = w
	}

	w.count++
	return w.count, w.resetAt.Sub(now)
}

// Ensure admissionControllerImpl implements AdmissionController
var _ AdmissionController = (*admissionControllerImpl)(nil)
