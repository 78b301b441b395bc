package events

import (
	"context"
	"testing"

	"jobfinder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventConstructors(t *testing.T) {
	t.Run("job viewed", func(t *testing.T) {
		e := NewJobViewed("mock#1", "user-1")
		assert.Equal(t, SourceJobSearch, e.Source)
		assert.Equal(t, "Job Viewed", e.DetailType)
		assert.Equal(t, "mock#1", e.Detail["job_id"])
		assert.Equal(t, "user-1", e.Detail["user_id"])
		assert.NotEmpty(t, e.Detail["timestamp"])
	})

	t.Run("anonymous view omits user", func(t *testing.T) {
		e := NewJobViewed("mock#1", "")
		_, ok := e.Detail["user_id"]
		assert.False(t, ok)
	})

	t.Run("sync completed", func(t *testing.T) {
		e := NewJobSyncCompleted("mock", 42, "2026-08-15T00:00:00Z", domain.BatchOutcomePartial)
		assert.Equal(t, SourceJobSync, e.Source)
		assert.Equal(t, 42, e.Detail["jobs_synced"])
		assert.Equal(t, "partial", e.Detail["status"])
	})

	t.Run("search performed", func(t *testing.T) {
		e := NewJobSearchPerformed(&domain.SearchFilter{Query: "golang"}, 7)
		assert.Equal(t, "Job Search Performed", e.DetailType)
		assert.Equal(t, 7, e.Detail["result_count"])
	})
}

func TestCaptureEmitter(t *testing.T) {
	capture := NewCaptureEmitter()
	ctx := context.Background()

	capture.Emit(ctx, NewJobViewed("mock#1", ""))
	capture.Emit(ctx, NewJobViewed("mock#2", ""))
	capture.Emit(ctx, NewJobSyncStarted("mock", domain.SyncTypeFull))

	assert.Len(t, capture.Events(), 3)

	viewed := capture.ByType("Job Viewed")
	require.Len(t, viewed, 2)
	assert.Equal(t, "mock#1", viewed[0].Detail["job_id"])

	assert.Empty(t, capture.ByType("Job Sync Completed"))
}
