package repository

import (
	"context"
	"time"

	"jobfinder/internal/domain"
)

// JobRepository is the document store for jobs. The store is the source of
// truth; the search index is derived from it.
type JobRepository interface {
	// Upsert writes a job under its composite key (last write wins).
	Upsert(ctx context.Context, job *domain.Job) error
	// Get returns a job by composite key, expired or not.
	// Returns ErrNotFound when absent.
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	// GetBatch hydrates jobs for an ordered key list. Keys missing from the
	// store are silently dropped from the result.
	GetBatch(ctx context.Context, jobIDs []string) ([]*domain.Job, error)
	// ListActiveKeysByProvider returns the composite keys of all active jobs
	// for a provider, used for full-sync reconciliation.
	ListActiveKeysByProvider(ctx context.Context, providerID string) ([]string, error)
	// Expire soft-deletes a job.
	Expire(ctx context.Context, jobID string) error
	// DeleteExpiredBefore hard-deletes expired jobs whose posted date is
	// older than the cutoff, returning the deleted keys.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}
