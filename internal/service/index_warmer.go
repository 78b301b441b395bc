package service

import (
	"context"
	"fmt"

	index "jobfinder/internal/index/iface"
	"jobfinder/internal/logger"
	repository "jobfinder/internal/repository/iface"
)

const warmBatchSize = 100

// IndexWarmer rebuilds the process-local search index from the document
// store. Each instance owns its own index, so a fresh process must replay
// the store's active jobs before it can serve queries.
type IndexWarmer struct {
	jobRepo   repository.JobRepository
	index     index.Index
	providers []string
	logger    logger.Logger
}

func NewIndexWarmer(
	jobRepo repository.JobRepository,
	idx index.Index,
	providers []string,
	log logger.Logger,
) *IndexWarmer {
	return &IndexWarmer{
		jobRepo:   jobRepo,
		index:     idx,
		providers: providers,
		logger:    log.With(logger.String("component", "index_warmer")),
	}
}

// Warm loads every active job for the configured providers into the index.
func (w *IndexWarmer) Warm(ctx context.Context) error {
	total := 0
	for _, providerID := range w.providers {
		keys, err := w.jobRepo.ListActiveKeysByProvider(ctx, providerID)
		if err != nil {
			return fmt.Errorf("list active jobs for %s: %w", providerID, err)
		}

		for start := 0; start < len(keys); start += warmBatchSize {
			end := start + warmBatchSize
			if end > len(keys) {
				end = len(keys)
			}

			jobs, err := w.jobRepo.GetBatch(ctx, keys[start:end])
			if err != nil {
				return fmt.Errorf("load jobs for %s: %w", providerID, err)
			}
			for _, job := range jobs {
				if err := w.index.Upsert(ctx, job); err != nil {
					return fmt.Errorf("index %s: %w", job.JobID, err)
				}
				total++
			}
		}
	}

	w.logger.Info("search index warmed",
		logger.Int("providers", len(w.providers)),
		logger.Int("jobs", total))
	return nil
}
