package events

import (
	"context"
	"sync"

	"jobfinder/internal/logger"
)

type logEmitter struct {
	logger logger.Logger
}

// NewLogEmitter creates a mock emitter that logs events instead of
// publishing them
func NewLogEmitter(log logger.Logger) Emitter {
	return &logEmitter{
		logger: log.With(logger.String("component", "log_emitter")),
	}
}

func (e *logEmitter) Emit(ctx context.Context, event Event) {
	e.logger.Info("MOCK: domain event",
		logger.String("source", event.Source),
		logger.String("detail_type", event.DetailType),
		logger.Any("detail", event.Detail),
	)
}

// CaptureEmitter records emitted events for assertions in tests.
type CaptureEmitter struct {
	mu     sync.Mutex
	events []Event
}

func NewCaptureEmitter() *CaptureEmitter {
	return &CaptureEmitter{}
}

func (e *CaptureEmitter) Emit(ctx context.Context, event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *CaptureEmitter) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

// ByType returns captured events with the given detail type.
func (e *CaptureEmitter) ByType(detailType string) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Event
	for _, evt := range e.events {
		if evt.DetailType == detailType {
			out = append(out, evt)
		}
	}
	return out
}
