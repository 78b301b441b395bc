package syncimpl

import (
	"context"

	syncqueue "jobfinder/internal/consumer/syncqueue/iface"
	"jobfinder/internal/domain"
	"jobfinder/internal/dto"
	"jobfinder/internal/ingest"
	"jobfinder/internal/logger"
	"jobfinder/internal/provider"
	queue "jobfinder/internal/queue/iface"
)

type syncConsumer struct {
	logger   logger.Logger
	queue    queue.Queue
	registry *provider.Registry
	pipeline *ingest.Pipeline
}

// NewSyncConsumer creates a consumer that runs provider syncs.
func NewSyncConsumer(
	log logger.Logger,
	q queue.Queue,
	registry *provider.Registry,
	pipeline *ingest.Pipeline,
) syncqueue.SyncConsumer {
	return &syncConsumer{
		logger:   log.With(logger.String("component", "sync_consumer")),
		queue:    q,
		registry: registry,
		pipeline: pipeline,
	}
}

// ProcessMessage implements SyncConsumer. A malformed request is dropped so
// it does not poison the queue; a provider or pipeline failure leaves the
// message for redelivery.
func (s *syncConsumer) ProcessMessage(ctx context.Context, message dto.SyncRequestMessage) bool {
	s.logger.Info("processing sync request",
		logger.String("provider", message.Provider),
		logger.String("sync_type", string(message.SyncType)))

	if message.SyncType != domain.SyncTypeFull && message.SyncType != domain.SyncTypeIncremental {
		s.logger.Error("dropping sync request with unknown sync type",
			logger.String("sync_type", string(message.SyncType)))
		return true
	}

	adapter, err := s.registry.Get(message.Provider)
	if err != nil {
		s.logger.Error("dropping sync request for unknown provider",
			logger.String("provider", message.Provider),
			logger.Error(err))
		return true
	}

	records, err := adapter.FetchJobs(ctx, message.SyncType)
	if err != nil {
		s.logger.Error("provider fetch failed, will retry",
			logger.String("provider", message.Provider),
			logger.Error(err))
		return false
	}

	result, err := s.pipeline.ProcessBatch(ctx, message.Provider, message.SyncType, records)
	if err != nil {
		s.logger.Error("sync batch failed, will retry",
			logger.String("provider", message.Provider),
			logger.Error(err))
		return false
	}

	s.logger.Info("sync request completed",
		logger.String("provider", message.Provider),
		logger.Int("upserted", result.Upserted),
		logger.Int("expired", result.Expired),
		logger.String("outcome", string(result.Outcome)))

	return true
}

// SendMessage enqueues a sync request.
func (s *syncConsumer) SendMessage(ctx context.Context, message dto.SyncRequestMessage) error {
	if err := s.queue.Send(ctx, message); err != nil {
		s.logger.Error("failed to enqueue sync request",
			logger.String("provider", message.Provider),
			logger.Error(err))
		return err
	}

	s.logger.Debug("sync request enqueued",
		logger.String("provider", message.Provider),
		logger.String("sync_type", string(message.SyncType)))

	return nil
}
