package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the matching core.
const (
	// TypeSwipeFeatures carries the learning/analytics features of a single
	// swipe decision.
	TypeSwipeFeatures = "swipe_features"

	// TypeMatchCreated announces a newly created match, consumed by
	// notification fan-out.
	TypeMatchCreated = "match_created"

	// TypeAdmissionFallback records that admission control degraded to its
	// local counter because the centralized counter was unreachable.
	TypeAdmissionFallback = "admission_fallback"
)

// Event is a fire-and-forget telemetry record. The payload is serialized
// JSON so sinks need no knowledge of the emitting service's types.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Handler defines an interface for components that process events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// Sink defines an interface for components that accept events.
// Services publish through a Sink without knowledge of the handlers behind it.
type Sink interface {
	// Emit publishes the given event. Returns an error if the event could
	// not be delivered; callers in the matching core treat that as a
	// telemetry failure, not an operation failure.
	Emit(ctx context.Context, event *Event) error
}
