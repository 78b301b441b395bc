package provider

import (
	"context"
	"testing"

	"jobfinder/internal/domain"
	"jobfinder/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)

	reg := NewRegistry(NewMockAdapter(nil, "", log))

	adapter, err := reg.Get("mock")
	require.NoError(t, err)
	assert.Equal(t, "mock", adapter.ID())

	_, err = reg.Get("linkedin")
	assert.Error(t, err)

	assert.Equal(t, []string{"mock"}, reg.IDs())
}

func TestMockAdapterFetch(t *testing.T) {
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)

	adapter := NewMockAdapter(nil, "", log)
	ctx := context.Background()

	full, err := adapter.FetchJobs(ctx, domain.SyncTypeFull)
	require.NoError(t, err)
	incremental, err := adapter.FetchJobs(ctx, domain.SyncTypeIncremental)
	require.NoError(t, err)

	assert.Greater(t, len(full), len(incremental))

	seen := make(map[string]bool)
	for _, job := range full {
		assert.NotEmpty(t, job.ID)
		assert.False(t, seen[job.ID], "duplicate provider job id %s", job.ID)
		seen[job.ID] = true
	}
}
