package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter dispatches events synchronously to handlers registered in
// memory.
type InMemoryEmitter struct {
	handlers []Handler
	mu       sync.RWMutex
	log      *slog.Logger
}

// NewInMemoryEmitter creates a new InMemoryEmitter.
func NewInMemoryEmitter(log *slog.Logger) *InMemoryEmitter {
	if log == nil {
		log = slog.Default()
	}
	return &InMemoryEmitter{
		log: log.With(slog.String("component", "event_emitter")),
	}
}

// RegisterHandler adds a handler that will receive all subsequent events.
func (e *InMemoryEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.log.Debug("registered event handler", slog.Int("handler_count", len(e.handlers)))
}

// EmitEvent publishes the event to all registered handlers. A failing handler
// does not stop delivery to the others; the first error is returned.
func (e *InMemoryEmitter) EmitEvent(ctx context.Context, event *TaskEvent) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	if len(handlers) == 0 {
		e.log.Warn("no handlers registered for event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.Type))
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.log.Error("handler failed to process event",
				slog.String("error", err.Error()),
				slog.Int("handler_index", i),
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.Type))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// LoggingHandler is the default subscriber: it writes each notification to
// the structured log, standing in for an outbound message bus.
type LoggingHandler struct {
	log *slog.Logger
}

// NewLoggingHandler creates a LoggingHandler.
func NewLoggingHandler(log *slog.Logger) *LoggingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LoggingHandler{log: log.With(slog.String("component", "task_notifications"))}
}

// HandleEvent implements Handler.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	h.log.Info("task notification",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("payload", string(event.Payload)))
	return nil
}
