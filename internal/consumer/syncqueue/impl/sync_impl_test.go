package syncimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobfinder/internal/domain"
	"jobfinder/internal/dto"
	"jobfinder/internal/events"
	"jobfinder/internal/index/memory"
	"jobfinder/internal/ingest"
	"jobfinder/internal/logger"
	"jobfinder/internal/provider"
	iface "jobfinder/internal/provider/iface"
	repository "jobfinder/internal/repository/iface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memJobRepo struct {
	jobs map[string]*domain.Job
}

func (m *memJobRepo) Upsert(ctx context.Context, job *domain.Job) error {
	cp := *job
	m.jobs[job.JobID] = &cp
	return nil
}

func (m *memJobRepo) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	if job, ok := m.jobs[jobID]; ok {
		cp := *job
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memJobRepo) GetBatch(ctx context.Context, jobIDs []string) ([]*domain.Job, error) {
	out := make([]*domain.Job, 0, len(jobIDs))
	for _, id := range jobIDs {
		if job, ok := m.jobs[id]; ok {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memJobRepo) ListActiveKeysByProvider(ctx context.Context, providerID string) ([]string, error) {
	var keys []string
	for id, job := range m.jobs {
		if job.ProviderID == providerID && job.Status == domain.JobStatusActive {
			keys = append(keys, id)
		}
	}
	return keys, nil
}

func (m *memJobRepo) Expire(ctx context.Context, jobID string) error {
	if job, ok := m.jobs[jobID]; ok {
		job.Status = domain.JobStatusExpired
		return nil
	}
	return repository.ErrNotFound
}

func (m *memJobRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	return nil, nil
}

type stubQueue struct {
	sent    []any
	sendErr error
}

func (s *stubQueue) Send(ctx context.Context, message interface{}) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, message)
	return nil
}

func (s *stubQueue) StartConsumer(ctx context.Context) error { return nil }
func (s *stubQueue) StopConsumer(ctx context.Context) error  { return nil }

type failingAdapter struct{}

func (failingAdapter) ID() string { return "flaky" }
func (failingAdapter) FetchJobs(ctx context.Context, syncType domain.SyncType) ([]domain.ProviderJob, error) {
	return nil, errors.New("upstream 503")
}

func setupConsumer(t *testing.T, adapters ...iface.Adapter) (*stubQueue, *memJobRepo, func(dto.SyncRequestMessage) bool) {
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)

	repo := &memJobRepo{jobs: make(map[string]*domain.Job)}
	pipeline := ingest.NewPipeline(repo, memory.NewMemoryIndex(log), events.NewCaptureEmitter(), log)
	q := &stubQueue{}

	if len(adapters) == 0 {
		adapters = []iface.Adapter{provider.NewMockAdapter(nil, "", log)}
	}
	consumer := NewSyncConsumer(log, q, provider.NewRegistry(adapters...), pipeline)

	return q, repo, func(msg dto.SyncRequestMessage) bool {
		return consumer.ProcessMessage(context.Background(), msg)
	}
}

func TestProcessMessageRunsSync(t *testing.T) {
	_, repo, process := setupConsumer(t)

	handled := process(dto.SyncRequestMessage{Provider: "mock", SyncType: domain.SyncTypeFull})

	assert.True(t, handled)
	assert.NotEmpty(t, repo.jobs)
	for id := range repo.jobs {
		assert.Equal(t, "mock", domain.ProviderFromKey(id))
	}
}

func TestProcessMessageDropsUnknownProvider(t *testing.T) {
	_, repo, process := setupConsumer(t)

	handled := process(dto.SyncRequestMessage{Provider: "linkedin", SyncType: domain.SyncTypeFull})

	// Dropped, not retried: redelivery cannot make the provider known.
	assert.True(t, handled)
	assert.Empty(t, repo.jobs)
}

func TestProcessMessageDropsBadSyncType(t *testing.T) {
	_, _, process := setupConsumer(t)

	handled := process(dto.SyncRequestMessage{Provider: "mock", SyncType: "weekly"})
	assert.True(t, handled)
}

func TestProcessMessageRetriesFetchFailure(t *testing.T) {
	_, _, process := setupConsumer(t, failingAdapter{})

	handled := process(dto.SyncRequestMessage{Provider: "flaky", SyncType: domain.SyncTypeFull})
	assert.False(t, handled)
}

func TestSendMessage(t *testing.T) {
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)

	repo := &memJobRepo{jobs: make(map[string]*domain.Job)}
	pipeline := ingest.NewPipeline(repo, memory.NewMemoryIndex(log), events.NewCaptureEmitter(), log)
	q := &stubQueue{}
	consumer := NewSyncConsumer(log, q, provider.NewRegistry(), pipeline)

	msg := dto.SyncRequestMessage{Provider: "mock", SyncType: domain.SyncTypeIncremental}
	require.NoError(t, consumer.SendMessage(context.Background(), msg))
	require.Len(t, q.sent, 1)
	assert.Equal(t, msg, q.sent[0])

	q.sendErr = errors.New("queue unavailable")
	assert.Error(t, consumer.SendMessage(context.Background(), msg))
}
