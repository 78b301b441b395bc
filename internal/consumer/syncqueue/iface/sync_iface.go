package syncqueue

import (
	"context"

	"jobfinder/internal/dto"
)

// SyncConsumer processes sync requests off the queue and enqueues new ones.
type SyncConsumer interface {
	// ProcessMessage runs one provider sync.
	// Returns true if the sync finished (message should be deleted).
	ProcessMessage(ctx context.Context, message dto.SyncRequestMessage) bool

	// SendMessage enqueues a sync request.
	SendMessage(ctx context.Context, message dto.SyncRequestMessage) error
}
