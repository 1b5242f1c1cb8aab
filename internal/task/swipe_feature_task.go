package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/events"
)

// SwipeFeaturePayload is the event body published for each swipe decision.
// Downstream learning pipelines consume it to train ranking models.
type SwipeFeaturePayload struct {
	FromUserID  string    `json:"from_user_id"`
	ToUserID    string    `json:"to_user_id"`
	Action      string    `json:"action"`
	IsSuperLike bool      `json:"is_super_like"`
	SwipedAt    time.Time `json:"swiped_at"`
}

// SwipeFeatureTask publishes the features of one swipe decision to the
// event sink. It is enqueued best-effort from the swipe path.
type SwipeFeatureTask struct {
	id      uuid.UUID
	payload SwipeFeaturePayload
	sink    events.Sink
}

// NewSwipeFeatureTask creates a task for the given swipe record.
func NewSwipeFeatureTask(record *domain.SwipeRecord, sink events.Sink) *SwipeFeatureTask {
	return &SwipeFeatureTask{
		id: uuid.New(),
		payload: SwipeFeaturePayload{
			FromUserID:  record.FromUserID,
			ToUserID:    record.ToUserID,
			Action:      string(record.Action),
			IsSuperLike: record.IsSuperLike,
			SwipedAt:    record.UpdatedAt,
		},
		sink: sink,
	}
}

// ID implements Task.
func (t *SwipeFeatureTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.
func (t *SwipeFeatureTask) Type() string {
	return TypeSwipeFeatures
}

// Execute implements Task.
func (t *SwipeFeatureTask) Execute(ctx context.Context) error {
	event, err := events.NewEvent(events.TypeSwipeFeatures, t.payload)
	if err != nil {
		return fmt.Errorf("failed to build swipe feature event: %w", err)
	}

	if err := t.sink.Emit(ctx, event); err != nil {
		return fmt.Errorf("failed to emit swipe feature event: %w", err)
	}

	return nil
}

// Ensure SwipeFeatureTask implements Task
var _ Task = (*SwipeFeatureTask)(nil)
