package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobfinder/internal/domain"
	"jobfinder/internal/events"
	index "jobfinder/internal/index/iface"
	"jobfinder/internal/index/memory"
	"jobfinder/internal/logger"
	repository "jobfinder/internal/repository/iface"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJobRepo struct {
	jobs      map[string]*domain.Job
	failPuts  map[string]bool
	listError error
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job), failPuts: make(map[string]bool)}
}

func (s *stubJobRepo) Upsert(ctx context.Context, job *domain.Job) error {
	if s.failPuts[job.JobID] {
		return errors.New("provisioned throughput exceeded")
	}
	cp := *job
	s.jobs[job.JobID] = &cp
	return nil
}

func (s *stubJobRepo) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (s *stubJobRepo) GetBatch(ctx context.Context, jobIDs []string) ([]*domain.Job, error) {
	out := make([]*domain.Job, 0, len(jobIDs))
	for _, id := range jobIDs {
		if job, ok := s.jobs[id]; ok {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubJobRepo) ListActiveKeysByProvider(ctx context.Context, providerID string) ([]string, error) {
	if s.listError != nil {
		return nil, s.listError
	}
	var keys []string
	for id, job := range s.jobs {
		if job.ProviderID == providerID && job.Status == domain.JobStatusActive {
			keys = append(keys, id)
		}
	}
	return keys, nil
}

func (s *stubJobRepo) Expire(ctx context.Context, jobID string) error {
	job, ok := s.jobs[jobID]
	if !ok {
		return repository.ErrNotFound
	}
	job.Status = domain.JobStatusExpired
	return nil
}

func (s *stubJobRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	var deleted []string
	for id, job := range s.jobs {
		if job.Status == domain.JobStatusExpired && job.PostedAt().Before(cutoff) {
			delete(s.jobs, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

type pipelineFixture struct {
	pipeline *Pipeline
	repo     *stubJobRepo
	emitter  *events.CaptureEmitter
	search   func(t *testing.T, provider string) []string
}

func setupPipeline(t *testing.T) *pipelineFixture {
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)

	repo := newStubJobRepo()
	emitter := events.NewCaptureEmitter()
	idx := memory.NewMemoryIndex(log)

	f := &pipelineFixture{
		pipeline: NewPipeline(repo, idx, emitter, log),
		repo:     repo,
		emitter:  emitter,
	}
	// No backoff sleeps in tests.
	f.pipeline.newBackOff = func() backoff.BackOff { return &backoff.StopBackOff{} }
	f.search = func(t *testing.T, provider string) []string {
		t.Helper()
		res, err := idx.Search(context.Background(), index.Query{
			Filter: domain.SearchFilter{Provider: provider},
			Limit:  100,
		})
		require.NoError(t, err)
		return res.JobIDs
	}
	return f
}

func record(id string) domain.ProviderJob {
	return domain.ProviderJob{
		ID:         id,
		Title:      "Engineer " + id,
		Company:    "Acme",
		Location:   "Berlin",
		PostedDate: "2026-08-01T00:00:00Z",
		ApplyURL:   fmt.Sprintf("https://jobs.example.com/%s", id),
	}
}

func TestProcessBatchSuccess(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental,
		[]domain.ProviderJob{record("a"), record("b")})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, domain.BatchOutcomeSuccess, result.Outcome)

	assert.Len(t, f.repo.jobs, 2)
	assert.Len(t, f.search(t, "mock"), 2)

	assert.Len(t, f.emitter.ByType("Job Sync Started"), 1)
	completed := f.emitter.ByType("Job Sync Completed")
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].Detail["jobs_synced"])
}

func TestProcessBatchSkipsMalformed(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	bad := record("bad")
	bad.ApplyURL = "not a url"

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental,
		[]domain.ProviderJob{record("a"), bad, record("b")})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, domain.BatchOutcomePartial, result.Outcome)
	assert.Len(t, f.repo.jobs, 2)
}

func TestSkippedRecordsDegradeOutcomeToPartial(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	bad := record("bad")
	bad.ApplyURL = "not a url"

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental,
		[]domain.ProviderJob{record("a"), bad})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, domain.BatchOutcomePartial, result.Outcome)

	completed := f.emitter.ByType("Job Sync Completed")
	require.Len(t, completed, 1)
	assert.Equal(t, "partial", completed[0].Detail["status"])
}

func TestAllRecordsSkippedIsPartial(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	bad := record("bad")
	bad.Title = ""

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental,
		[]domain.ProviderJob{bad})
	require.NoError(t, err)

	// Nothing failed to write, so the batch is degraded, not failed.
	assert.Equal(t, domain.BatchOutcomePartial, result.Outcome)
	assert.Empty(t, f.emitter.ByType("Job Sync Failed"))
}

func TestProcessBatchIsIdempotent(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	batch := []domain.ProviderJob{record("a"), record("b")}

	_, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental, batch)
	require.NoError(t, err)
	_, err = f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental, batch)
	require.NoError(t, err)

	assert.Len(t, f.repo.jobs, 2)
	assert.Len(t, f.search(t, "mock"), 2)
}

func TestFullSyncExpiresMissingJobs(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	_, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeFull,
		[]domain.ProviderJob{record("a"), record("b"), record("c")})
	require.NoError(t, err)

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeFull,
		[]domain.ProviderJob{record("a"), record("c")})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Expired)
	assert.Equal(t, domain.JobStatusExpired, f.repo.jobs["mock#b"].Status)
	assert.ElementsMatch(t, []string{"mock#a", "mock#c"}, f.search(t, "mock"))
}

func TestIncrementalSyncNeverExpires(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	_, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeFull,
		[]domain.ProviderJob{record("a"), record("b")})
	require.NoError(t, err)

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental,
		[]domain.ProviderJob{record("a")})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Expired)
	assert.Equal(t, domain.JobStatusActive, f.repo.jobs["mock#b"].Status)
}

func TestProcessBatchPartialOutcome(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	f.repo.failPuts["mock#b"] = true

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental,
		[]domain.ProviderJob{record("a"), record("b")})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, domain.BatchOutcomePartial, result.Outcome)

	// The failed job must not be searchable.
	assert.ElementsMatch(t, []string{"mock#a"}, f.search(t, "mock"))
}

func TestProcessBatchFailedOutcome(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	f.repo.failPuts["mock#a"] = true
	f.repo.failPuts["mock#b"] = true

	result, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeIncremental,
		[]domain.ProviderJob{record("a"), record("b")})
	require.NoError(t, err)

	assert.Equal(t, domain.BatchOutcomeFailed, result.Outcome)
	assert.Len(t, f.emitter.ByType("Job Sync Failed"), 1)
	assert.Empty(t, f.emitter.ByType("Job Sync Completed"))
}

func TestReconciliationFailureAbortsFullSync(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	f.repo.listError = errors.New("table unavailable")

	_, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeFull,
		[]domain.ProviderJob{record("a")})
	require.Error(t, err)
	assert.Len(t, f.emitter.ByType("Job Sync Failed"), 1)
}

func TestReapDeletesExpiredPastTTL(t *testing.T) {
	f := setupPipeline(t)
	ctx := context.Background()

	old := record("old")
	old.PostedDate = "2024-01-01T00:00:00Z"

	_, err := f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeFull,
		[]domain.ProviderJob{old, record("fresh")})
	require.NoError(t, err)

	// Drop the stale job from the provider feed so it expires, then reap.
	_, err = f.pipeline.ProcessBatch(ctx, "mock", domain.SyncTypeFull,
		[]domain.ProviderJob{record("fresh")})
	require.NoError(t, err)

	reaped, err := f.pipeline.Reap(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, reaped)
	_, ok := f.repo.jobs["mock#old"]
	assert.False(t, ok)
	_, ok = f.repo.jobs["mock#fresh"]
	assert.True(t, ok)
}
