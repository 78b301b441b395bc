package service

import (
	"context"
	"fmt"

	syncqueue "jobfinder/internal/consumer/syncqueue/iface"
	"jobfinder/internal/domain"
	"jobfinder/internal/dto"
	"jobfinder/internal/ingest"
	"jobfinder/internal/logger"
	"jobfinder/internal/provider"

	"github.com/robfig/cron/v3"
)

type ISyncScheduler interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	TriggerSync(ctx context.Context, providerID string, syncType domain.SyncType) error
}

// SyncScheduler enqueues periodic full syncs for every registered provider
// and runs the retention reaper. The queue fans the work out, so several
// scheduler replicas at most enqueue duplicate requests, which the pipeline
// absorbs idempotently.
type SyncScheduler struct {
	consumer      syncqueue.SyncConsumer
	registry      *provider.Registry
	pipeline      *ingest.Pipeline
	logger        logger.Logger
	cron          *cron.Cron
	intervalHours int
}

// NewSyncScheduler creates the periodic sync scheduler.
func NewSyncScheduler(
	consumer syncqueue.SyncConsumer,
	registry *provider.Registry,
	pipeline *ingest.Pipeline,
	intervalHours int,
	log logger.Logger,
) ISyncScheduler {
	if intervalHours <= 0 {
		intervalHours = 6
	}
	return &SyncScheduler{
		consumer:      consumer,
		registry:      registry,
		pipeline:      pipeline,
		logger:        log.With(logger.String("component", "sync_scheduler")),
		cron:          cron.New(),
		intervalHours: intervalHours,
	}
}

// Start registers the cron entries and begins ticking.
func (s *SyncScheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("0 */%d * * *", s.intervalHours)
	if _, err := s.cron.AddFunc(spec, func() {
		s.enqueueFullSyncs(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to add sync cron: %w", err)
	}

	// Reaper: drop expired jobs past retention once a day, off-peak.
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if _, err := s.pipeline.Reap(context.Background()); err != nil {
			s.logger.Error("retention reap failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to add reaper cron: %w", err)
	}

	s.cron.Start()
	s.logger.Info("sync scheduler started",
		logger.Int("interval_hours", s.intervalHours),
		logger.Int("providers", len(s.registry.IDs())))

	return nil
}

// Stop halts the cron and waits for running entries to finish.
func (s *SyncScheduler) Stop(ctx context.Context) error {
	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// TriggerSync enqueues a one-off sync, used by the manual trigger endpoint.
func (s *SyncScheduler) TriggerSync(ctx context.Context, providerID string, syncType domain.SyncType) error {
	if _, err := s.registry.Get(providerID); err != nil {
		return err
	}
	return s.consumer.SendMessage(ctx, dto.SyncRequestMessage{
		Provider: providerID,
		SyncType: syncType,
	})
}

func (s *SyncScheduler) enqueueFullSyncs(ctx context.Context) {
	for _, providerID := range s.registry.IDs() {
		msg := dto.SyncRequestMessage{
			Provider: providerID,
			SyncType: domain.SyncTypeFull,
		}
		if err := s.consumer.SendMessage(ctx, msg); err != nil {
			s.logger.Error("failed to enqueue scheduled sync",
				logger.String("provider", providerID),
				logger.Error(err))
			continue
		}
		s.logger.Info("scheduled full sync enqueued",
			logger.String("provider", providerID))
	}
}
