package provider

import (
	"context"

	"jobfinder/internal/domain"
)

// Adapter pulls job postings from one upstream job board. A full fetch must
// return the provider's complete current catalog; an incremental fetch may
// return only recently changed postings.
type Adapter interface {
	ID() string
	FetchJobs(ctx context.Context, syncType domain.SyncType) ([]domain.ProviderJob, error)
}
