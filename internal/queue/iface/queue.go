package queue

import (
	"context"
)

// MessageProcessor handles one decoded message and reports whether it was
// handled. Unhandled messages stay on the queue and are redelivered.
type MessageProcessor[T any] interface {
	ProcessMessage(ctx context.Context, message T) bool
}

// MessageProcessorFunc allows functions to implement MessageProcessor
type MessageProcessorFunc[T any] func(ctx context.Context, message T) bool

func (f MessageProcessorFunc[T]) ProcessMessage(ctx context.Context, message T) bool {
	return f(ctx, message)
}

// Queue defines queue operations
type Queue interface {
	Send(ctx context.Context, message interface{}) error
	StartConsumer(ctx context.Context) error
	StopConsumer(ctx context.Context) error
}
