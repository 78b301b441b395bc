package events

import "context"

// Emitter publishes domain events to the bus. Publication is best-effort:
// implementations log failures and never propagate them, so the triggering
// operation succeeds regardless of bus health.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}
