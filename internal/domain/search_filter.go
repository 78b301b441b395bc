package domain

import (
	"fmt"
	"time"
)

// SearchFilter is the typed filter shape shared by live searches and saved
// searches. Saved searches persist it verbatim, so it is validated at write
// time rather than interpreted ad hoc when replayed.
type SearchFilter struct {
	Query       string `json:"q,omitempty" dynamodbav:"q,omitempty"`
	Location    string `json:"location,omitempty" dynamodbav:"location,omitempty"`
	Remote      *bool  `json:"remote,omitempty" dynamodbav:"remote,omitempty"`
	MinSalary   *int   `json:"min_salary,omitempty" dynamodbav:"min_salary,omitempty"`
	MaxSalary   *int   `json:"max_salary,omitempty" dynamodbav:"max_salary,omitempty"`
	Provider    string `json:"provider,omitempty" dynamodbav:"provider,omitempty"`
	PostedAfter string `json:"posted_after,omitempty" dynamodbav:"posted_after,omitempty"`
}

// Validate checks the internal consistency of the filter.
func (f *SearchFilter) Validate() error {
	if f.MinSalary != nil && *f.MinSalary < 0 {
		return fmt.Errorf("min_salary must not be negative")
	}
	if f.MaxSalary != nil && *f.MaxSalary < 0 {
		return fmt.Errorf("max_salary must not be negative")
	}
	if f.MinSalary != nil && f.MaxSalary != nil && *f.MinSalary > *f.MaxSalary {
		return fmt.Errorf("min_salary %d exceeds max_salary %d", *f.MinSalary, *f.MaxSalary)
	}
	if f.PostedAfter != "" {
		if _, err := time.Parse(time.RFC3339, f.PostedAfter); err != nil {
			return fmt.Errorf("posted_after is not a valid ISO8601 timestamp: %w", err)
		}
	}
	return nil
}
