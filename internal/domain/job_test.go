package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompositeJobKey(t *testing.T) {
	key := CompositeJobKey("mock", "eng-1")
	assert.Equal(t, "mock#eng-1", key)
	assert.Equal(t, "mock", ProviderFromKey(key))
	assert.Equal(t, "", ProviderFromKey("no-separator"))
}

func TestJobIsExpired(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	t.Run("active without expiry", func(t *testing.T) {
		job := &Job{Status: JobStatusActive}
		assert.False(t, job.IsExpired(now))
	})

	t.Run("status expired", func(t *testing.T) {
		job := &Job{Status: JobStatusExpired}
		assert.True(t, job.IsExpired(now))
	})

	t.Run("past expires_at", func(t *testing.T) {
		job := &Job{Status: JobStatusActive, ExpiresAt: "2026-08-01T00:00:00Z"}
		assert.True(t, job.IsExpired(now))
	})

	t.Run("future expires_at", func(t *testing.T) {
		job := &Job{Status: JobStatusActive, ExpiresAt: "2026-09-01T00:00:00Z"}
		assert.False(t, job.IsExpired(now))
	})
}

func TestSearchFilterValidate(t *testing.T) {
	salary := func(v int) *int { return &v }

	t.Run("valid", func(t *testing.T) {
		f := &SearchFilter{
			Query:       "golang",
			MinSalary:   salary(50000),
			MaxSalary:   salary(90000),
			PostedAfter: "2026-08-01T00:00:00Z",
		}
		assert.NoError(t, f.Validate())
	})

	t.Run("negative salary", func(t *testing.T) {
		f := &SearchFilter{MinSalary: salary(-1)}
		assert.Error(t, f.Validate())
	})

	t.Run("inverted range", func(t *testing.T) {
		f := &SearchFilter{MinSalary: salary(90000), MaxSalary: salary(50000)}
		assert.Error(t, f.Validate())
	})

	t.Run("bad posted_after", func(t *testing.T) {
		f := &SearchFilter{PostedAfter: "recently"}
		assert.Error(t, f.Validate())
	})
}
