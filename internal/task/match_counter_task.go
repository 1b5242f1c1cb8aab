package task

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/events"
	"github.com/sparkmatch/spark-api/internal/store"
)

// MatchCreatedPayload is the event body published when a match is created.
// Notification fan-out consumes it to alert both users.
type MatchCreatedPayload struct {
	MatchID   string    `json:"match_id"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchCounterTask bumps both users' total-match counters and announces the
// match on the event sink. The counters are advisory relative to match
// creation and run off the request path; the two increments commit in one
// transaction so the pair's counters never drift apart.
type MatchCounterTask struct {
	id       uuid.UUID
	match    MatchCreatedPayload
	runTx    store.TxRunner
	profiles store.ProfileStore
	sink     events.Sink
	logger   *slog.Logger
}

// NewMatchCounterTask creates a task for a freshly created match.
// If logger is nil, a default logger will be used.
func NewMatchCounterTask(
	match *domain.Match,
	runTx store.TxRunner,
	profiles store.ProfileStore,
	sink events.Sink,
	logger *slog.Logger,
) *MatchCounterTask {
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchCounterTask{
		id: uuid.New(),
		match: MatchCreatedPayload{
			MatchID:   match.ID.String(),
			UserA:     match.UserA,
			UserB:     match.UserB,
			CreatedAt: match.CreatedAt,
		},
		runTx:    runTx,
		profiles: profiles,
		sink:     sink,
		logger:   logger.With(slog.String("component", "match_counter_task")),
	}
}

// ID implements Task.
func (t *MatchCounterTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.
func (t *MatchCounterTask) Type() string {
	return TypeMatchCounters
}

// Execute implements Task. Both counters bump inside a single transaction
// so the two sides of a match never drift apart; the match-created event is
// published even when the counter write fails.
func (t *MatchCounterTask) Execute(ctx context.Context) error {
	var firstErr error
	err := t.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		profiles := t.profiles.WithTx(tx)
		for _, userID := range []string{t.match.UserA, t.match.UserB} {
			if err := profiles.IncrementTotalMatches(ctx, userID); err != nil {
				return fmt.Errorf("increment total matches for %s: %w", userID, err)
			}
		}
		return nil
	})
	if err != nil {
		t.logger.Error("failed to increment total matches",
			slog.String("error", err.Error()),
			slog.String("match_id", t.match.MatchID))
		firstErr = err
	}

	event, err := events.NewEvent(events.TypeMatchCreated, t.match)
	if err != nil {
		return fmt.Errorf("failed to build match created event: %w", err)
	}
	if err := t.sink.Emit(ctx, event); err != nil {
		t.logger.Error("failed to emit match created event",
			slog.String("error", err.Error()),
			slog.String("match_id", t.match.MatchID))
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// Ensure MatchCounterTask implements Task
var _ Task = (*MatchCounterTask)(nil)
