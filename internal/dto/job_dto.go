package dto

import "jobfinder/internal/domain"

// SearchJobsRequest carries the parsed query parameters of a search call.
// Optional numeric and boolean filters are pointers so "absent" and "zero"
// stay distinguishable.
type SearchJobsRequest struct {
	Query       string `json:"q,omitempty"`
	Location    string `json:"location,omitempty"`
	Remote      *bool  `json:"remote,omitempty"`
	MinSalary   *int   `json:"min_salary,omitempty"`
	MaxSalary   *int   `json:"max_salary,omitempty"`
	Provider    string `json:"provider,omitempty"`
	PostedAfter string `json:"posted_after,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Cursor      string `json:"cursor,omitempty"`
}

type SearchJobsResponse struct {
	Jobs       []domain.Job `json:"jobs"`
	Total      int          `json:"total"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

type GetJobRequest struct{}

type GetJobResponse struct {
	Job domain.Job `json:"job"`
}

type AggregationsRequest struct {
	Query     string `json:"q,omitempty"`
	Location  string `json:"location,omitempty"`
	Remote    *bool  `json:"remote,omitempty"`
	MinSalary *int   `json:"min_salary,omitempty"`
	MaxSalary *int   `json:"max_salary,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

type LocationBucket struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type SalaryRangeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type AggregationsResponse struct {
	Locations    []LocationBucket    `json:"locations"`
	SalaryRanges []SalaryRangeBucket `json:"salary_ranges"`
}
