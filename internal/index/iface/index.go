package index

import (
	"context"
	"time"

	"jobfinder/internal/domain"
)

// Query is a planned index query: filter predicates plus a window. The
// planner owns validation; the index assumes the query is well formed.
type Query struct {
	Filter domain.SearchFilter
	Offset int
	Limit  int
	// Now is the evaluation instant for expiry checks. Zero means wall clock.
	Now time.Time
}

// Result carries the ordered composite keys of the window plus the total
// match count. Records are hydrated from the document store, not from here.
type Result struct {
	JobIDs []string
	Total  int
}

// Aggregates holds facet counts keyed by group label. Zero-count groups are
// never present.
type Aggregates struct {
	Locations    map[string]int
	SalaryRanges map[string]int
}

// SalaryBucket is one fixed aggregation band. Max < 0 means unbounded.
type SalaryBucket struct {
	Label string
	Min   int
	Max   int
}

// SalaryBuckets is the fixed bucket set used by aggregation queries.
var SalaryBuckets = []SalaryBucket{
	{Label: "0-50000", Min: 0, Max: 50000},
	{Label: "50000-100000", Min: 50000, Max: 100000},
	{Label: "100000-150000", Min: 100000, Max: 150000},
	{Label: "150000+", Min: 150000, Max: -1},
}

// Index is the inverted/faceted index over jobs.
type Index interface {
	Upsert(ctx context.Context, job *domain.Job) error
	Remove(ctx context.Context, jobID string) error
	MarkExpired(ctx context.Context, jobID string) error
	Search(ctx context.Context, q Query) (*Result, error)
	Aggregate(ctx context.Context, filter domain.SearchFilter) (*Aggregates, error)
}
