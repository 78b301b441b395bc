package domain

import (
	"strings"
	"time"
)

// JobStatus marks whether a job is still served by queries
type JobStatus string

const (
	JobStatusActive  JobStatus = "ACTIVE"
	JobStatusExpired JobStatus = "EXPIRED"
)

// JobTTL is how long a job stays around after posting before the reaper
// removes it.
const JobTTL = 90 * 24 * time.Hour

// Job is a normalized job posting. JobID is the composite key
// provider_id#job_id and is stable across re-syncs.
type Job struct {
	JobID       string    `json:"job_id" dynamodbav:"job_id"`
	ProviderID  string    `json:"provider_id" dynamodbav:"provider_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	Company     string    `json:"company" dynamodbav:"company"`
	Location    string    `json:"location" dynamodbav:"location"`
	Remote      bool      `json:"remote" dynamodbav:"remote"`
	MinSalary   *int      `json:"min_salary,omitempty" dynamodbav:"min_salary,omitempty"`
	MaxSalary   *int      `json:"max_salary,omitempty" dynamodbav:"max_salary,omitempty"`
	PostedDate  string    `json:"posted_date" dynamodbav:"posted_date"` // ISO8601
	ExpiresAt   string    `json:"expires_at,omitempty" dynamodbav:"expires_at,omitempty"`
	ApplyURL    string    `json:"apply_url" dynamodbav:"apply_url"`
	Tags        []string  `json:"tags,omitempty" dynamodbav:"tags,omitempty"`
	Status      JobStatus `json:"status" dynamodbav:"status"`
	SyncedAt    string    `json:"synced_at" dynamodbav:"synced_at"`
}

// CompositeJobKey derives the stable storage key for a provider-native job ID.
func CompositeJobKey(providerID, nativeID string) string {
	return providerID + "#" + nativeID
}

// ProviderFromKey returns the provider half of a composite job key.
func ProviderFromKey(jobID string) string {
	if i := strings.Index(jobID, "#"); i > 0 {
		return jobID[:i]
	}
	return ""
}

// IsExpired reports whether the job should be excluded from query results
// at the given instant.
func (j *Job) IsExpired(now time.Time) bool {
	if j.Status == JobStatusExpired {
		return true
	}
	if j.ExpiresAt != "" {
		if t, err := time.Parse(time.RFC3339, j.ExpiresAt); err == nil && t.Before(now) {
			return true
		}
	}
	return false
}

// PostedAt parses the posted date. A zero time means the date was malformed,
// which normalization should have prevented.
func (j *Job) PostedAt() time.Time {
	t, err := time.Parse(time.RFC3339, j.PostedDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
