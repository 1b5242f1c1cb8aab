package events

import (
	"context"
	"log/slog"
	"sync"
)

// FanOutSink is a simple implementation of the Sink interface that stores
// registered handlers in memory and dispatches events to all of them.
type FanOutSink struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewFanOutSink creates a new instance of FanOutSink.
func NewFanOutSink(logger *slog.Logger) *FanOutSink {
	if logger == nil {
		logger = slog.Default()
	}

	return &FanOutSink{
		handlers: make([]Handler, 0),
		logger:   logger.With(slog.String("component", "fan_out_sink")),
	}
}

// RegisterHandler adds a new event handler to receive events.
func (s *FanOutSink) RegisterHandler(handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
	s.logger.Debug("registered new event handler", "handler_count", len(s.handlers))
}

// Emit publishes the given event to all registered handlers.
// If any handler returns an error, the event is still delivered to all other
// handlers, and the first error encountered is returned.
func (s *FanOutSink) Emit(ctx context.Context, event *Event) error {
	s.mu.RLock()
	handlers := make([]Handler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.RUnlock()

	if len(handlers) == 0 {
		s.logger.Warn("no handlers registered for event",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			s.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// Ensure FanOutSink implements Sink
var _ Sink = (*FanOutSink)(nil)

// LoggingHandler is a terminal handler that writes every event to the
// structured log. It stands in for external feature pipelines in
// development and keeps the fan-out exercised in tests.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a handler that logs events at info level.
func NewLoggingHandler(logger *slog.Logger) *LoggingHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingHandler{
		logger: logger.With(slog.String("component", "event_log")),
	}
}

// HandleEvent implements Handler.
func (h *LoggingHandler) HandleEvent(_ context.Context, event *Event) error {
	h.logger.Info("event",
		"event_id", event.ID,
		"event_type", event.Type,
		"payload", string(event.Payload))
	return nil
}

// Ensure LoggingHandler implements Handler
var _ Handler = (*LoggingHandler)(nil)
