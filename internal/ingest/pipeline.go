package ingest

import (
	"context"
	"fmt"
	"time"

	"jobfinder/internal/domain"
	"jobfinder/internal/events"
	index "jobfinder/internal/index/iface"
	"jobfinder/internal/logger"
	repository "jobfinder/internal/repository/iface"

	"github.com/cenkalti/backoff/v4"
)

const (
	writeTimeout    = 5 * time.Second
	writeMaxRetries = 3
)

// BatchResult summarizes one processed provider batch.
type BatchResult struct {
	Provider string
	SyncType domain.SyncType
	Upserted int
	Skipped  int
	Failed   int
	Expired  int
	Outcome  domain.BatchOutcome
}

// Pipeline normalizes provider batches and keeps the document store and the
// search index in step. The store is written first; a job that never reaches
// the store must never become searchable.
type Pipeline struct {
	jobRepo    repository.JobRepository
	index      index.Index
	emitter    events.Emitter
	logger     logger.Logger
	now        func() time.Time
	newBackOff func() backoff.BackOff
}

func NewPipeline(
	jobRepo repository.JobRepository,
	idx index.Index,
	emitter events.Emitter,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		jobRepo: jobRepo,
		index:   idx,
		emitter: emitter,
		logger:  log.With(logger.String("component", "ingest_pipeline")),
		now:     time.Now,
		newBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), writeMaxRetries)
		},
	}
}

// ProcessBatch ingests one batch from a provider. Malformed records are
// skipped and counted, never aborting the batch. A full sync additionally
// expires previously stored jobs the provider no longer reports.
func (p *Pipeline) ProcessBatch(ctx context.Context, providerID string, syncType domain.SyncType, records []domain.ProviderJob) (*BatchResult, error) {
	startedAt := p.now().UTC().Format(time.RFC3339)
	p.emitter.Emit(ctx, events.NewJobSyncStarted(providerID, syncType))

	result := &BatchResult{Provider: providerID, SyncType: syncType}
	seen := make(map[string]bool, len(records))

	for i := range records {
		record := &records[i]

		job, err := NormalizeJob(providerID, record, p.now())
		if err != nil {
			result.Skipped++
			p.logger.Warn("skipping malformed provider record",
				logger.String("provider_id", providerID),
				logger.Error(err))
			continue
		}

		if err := p.upsert(ctx, job); err != nil {
			result.Failed++
			p.logger.Error("failed to persist job",
				logger.String("job_id", job.JobID),
				logger.Error(err))
			continue
		}

		seen[job.JobID] = true
		result.Upserted++
	}

	if syncType == domain.SyncTypeFull {
		expired, err := p.reconcile(ctx, providerID, seen)
		if err != nil {
			result.Outcome = domain.BatchOutcomeFailed
			p.emitter.Emit(ctx, events.NewJobSyncFailed(providerID, err.Error(), startedAt))
			return result, fmt.Errorf("full sync reconciliation for %s: %w", providerID, err)
		}
		result.Expired = expired
	}

	result.Outcome = classify(result)
	if result.Outcome == domain.BatchOutcomeFailed {
		p.emitter.Emit(ctx, events.NewJobSyncFailed(providerID, fmt.Sprintf("all %d records failed", result.Failed), startedAt))
	} else {
		p.emitter.Emit(ctx, events.NewJobSyncCompleted(providerID, result.Upserted, startedAt, result.Outcome))
	}

	p.logger.Info("processed provider batch",
		logger.String("provider_id", providerID),
		logger.String("sync_type", string(syncType)),
		logger.Int("upserted", result.Upserted),
		logger.Int("skipped", result.Skipped),
		logger.Int("failed", result.Failed),
		logger.Int("expired", result.Expired),
		logger.String("outcome", string(result.Outcome)))

	return result, nil
}

// upsert writes the job to the store and then mirrors it into the index,
// retrying each write with exponential backoff.
func (p *Pipeline) upsert(ctx context.Context, job *domain.Job) error {
	if err := p.retry(ctx, func(callCtx context.Context) error {
		return p.jobRepo.Upsert(callCtx, job)
	}); err != nil {
		return fmt.Errorf("store upsert: %w", err)
	}

	if err := p.retry(ctx, func(callCtx context.Context) error {
		return p.index.Upsert(callCtx, job)
	}); err != nil {
		return fmt.Errorf("index upsert: %w", err)
	}

	return nil
}

func (p *Pipeline) retry(ctx context.Context, op func(context.Context) error) error {
	attempt := func() error {
		callCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()
		return op(callCtx)
	}
	return backoff.Retry(attempt, backoff.WithContext(p.newBackOff(), ctx))
}

// reconcile expires stored jobs the provider stopped reporting. Expiry is
// soft: the job stays in the store until the reaper removes it.
func (p *Pipeline) reconcile(ctx context.Context, providerID string, seen map[string]bool) (int, error) {
	keys, err := p.jobRepo.ListActiveKeysByProvider(ctx, providerID)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, jobID := range keys {
		if seen[jobID] {
			continue
		}
		if err := p.jobRepo.Expire(ctx, jobID); err != nil {
			if repository.IsNotFoundError(err) {
				continue
			}
			return expired, fmt.Errorf("expire %s: %w", jobID, err)
		}
		if err := p.index.MarkExpired(ctx, jobID); err != nil {
			return expired, fmt.Errorf("mark expired %s: %w", jobID, err)
		}
		expired++
	}
	return expired, nil
}

// Reap hard-deletes jobs whose posting date fell past the retention window
// and drops them from the index.
func (p *Pipeline) Reap(ctx context.Context) (int, error) {
	cutoff := p.now().Add(-domain.JobTTL)

	deleted, err := p.jobRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("reap expired jobs: %w", err)
	}

	for _, jobID := range deleted {
		if err := p.index.Remove(ctx, jobID); err != nil {
			p.logger.Error("failed to drop reaped job from index",
				logger.String("job_id", jobID),
				logger.Error(err))
		}
	}

	if len(deleted) > 0 {
		p.logger.Info("reaped expired jobs", logger.Int("count", len(deleted)))
	}
	return len(deleted), nil
}

// classify maps batch counters to an outcome: clean batches are success,
// any skipped or failed record degrades to partial, and a batch where every
// write failed is failed.
func classify(r *BatchResult) domain.BatchOutcome {
	switch {
	case r.Failed > 0 && r.Upserted == 0:
		return domain.BatchOutcomeFailed
	case r.Skipped > 0 || r.Failed > 0:
		return domain.BatchOutcomePartial
	default:
		return domain.BatchOutcomeSuccess
	}
}
