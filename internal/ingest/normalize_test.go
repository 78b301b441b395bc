package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"jobfinder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() domain.ProviderJob {
	return domain.ProviderJob{
		ID:         "j-1",
		Title:      "  Senior   Go Engineer ",
		Company:    "Acme Corp",
		Location:   "  BERLIN ",
		MinSalary:  float64(70000),
		MaxSalary:  "90,000",
		PostedDate: "2026-08-01T10:00:00Z",
		ApplyURL:   "https://jobs.example.com/j-1",
		Tags:       []string{" Go ", "Backend", ""},
	}
}

func TestNormalizeJob(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	raw := validRecord()
	job, err := NormalizeJob("mock", &raw, now)
	require.NoError(t, err)

	assert.Equal(t, "mock#j-1", job.JobID)
	assert.Equal(t, "mock", job.ProviderID)
	assert.Equal(t, "Senior Go Engineer", job.Title)
	assert.Equal(t, "Berlin", job.Location)
	require.NotNil(t, job.MinSalary)
	assert.Equal(t, 70000, *job.MinSalary)
	require.NotNil(t, job.MaxSalary)
	assert.Equal(t, 90000, *job.MaxSalary)
	assert.Equal(t, []string{"go", "backend"}, job.Tags)
	assert.Equal(t, domain.JobStatusActive, job.Status)
	assert.Equal(t, "2026-08-15T12:00:00Z", job.SyncedAt)
}

func TestNormalizeJobRejectsMalformed(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(*domain.ProviderJob)
	}{
		{"missing id", func(r *domain.ProviderJob) { r.ID = "  " }},
		{"missing title", func(r *domain.ProviderJob) { r.Title = "" }},
		{"bad posted date", func(r *domain.ProviderJob) { r.PostedDate = "last tuesday" }},
		{"relative apply url", func(r *domain.ProviderJob) { r.ApplyURL = "/jobs/apply" }},
		{"unparseable salary", func(r *domain.ProviderJob) { r.MinSalary = "competitive" }},
		{"negative salary", func(r *domain.ProviderJob) { r.MaxSalary = float64(-1) }},
		{"inverted salary range", func(r *domain.ProviderJob) { r.MinSalary = 90000; r.MaxSalary = 50000 }},
		{"bad expires_at", func(r *domain.ProviderJob) { r.ExpiresAt = "soon" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRecord()
			tc.mutate(&raw)
			_, err := NormalizeJob("mock", &raw, now)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeJobAcceptsBareDate(t *testing.T) {
	raw := validRecord()
	raw.PostedDate = "2026-08-01"

	job, err := NormalizeJob("mock", &raw, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01T00:00:00Z", job.PostedDate)
}

func TestCoerceSalary(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want *int
	}{
		{"nil", nil, nil},
		{"int", 85000, intPtr(85000)},
		{"int64", int64(85000), intPtr(85000)},
		{"float", float64(85000.4), intPtr(85000)},
		{"json number", json.Number("85000"), intPtr(85000)},
		{"string", "85000", intPtr(85000)},
		{"string with separators", " 85,000 ", intPtr(85000)},
		{"empty string", "  ", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := coerceSalary(tc.in)
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tc.want, *got)
			}
		})
	}

	t.Run("rejects bool", func(t *testing.T) {
		_, err := coerceSalary(true)
		assert.Error(t, err)
	})
}

func intPtr(v int) *int { return &v }
