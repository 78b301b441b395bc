package domain

// SyncType distinguishes a full provider reconciliation from an
// add/update-only pass.
type SyncType string

const (
	SyncTypeFull        SyncType = "full"
	SyncTypeIncremental SyncType = "incremental"
)

// BatchOutcome classifies a processed ingestion batch.
type BatchOutcome string

const (
	BatchOutcomeSuccess BatchOutcome = "success"
	BatchOutcomePartial BatchOutcome = "partial"
	BatchOutcomeFailed  BatchOutcome = "failed"
)

// ProviderJob is a provider-native record before normalization. Salary
// fields are left loose because providers deliver them as strings, floats,
// or integers.
type ProviderJob struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	MinSalary   any      `json:"min_salary,omitempty"`
	MaxSalary   any      `json:"max_salary,omitempty"`
	PostedDate  string   `json:"posted_date"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
	ApplyURL    string   `json:"apply_url"`
	Tags        []string `json:"tags,omitempty"`
}
