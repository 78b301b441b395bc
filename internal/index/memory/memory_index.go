package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"jobfinder/internal/domain"
	index "jobfinder/internal/index/iface"
	"jobfinder/internal/logger"
)

type entry struct {
	job    *domain.Job
	tokens map[string]int
}

// memoryIndex is an in-process faceted index guarded by a RWMutex. It is
// safe for concurrent writers syncing different providers.
type memoryIndex struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  logger.Logger
}

// NewMemoryIndex creates an empty in-memory search index
func NewMemoryIndex(log logger.Logger) index.Index {
	return &memoryIndex{
		entries: make(map[string]*entry),
		logger:  log.With(logger.String("component", "memory_index")),
	}
}

func (m *memoryIndex) Upsert(ctx context.Context, job *domain.Job) error {
	cp := *job

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[job.JobID] = &entry{
		job:    &cp,
		tokens: tokenize(&cp),
	}
	return nil
}

func (m *memoryIndex) Remove(ctx context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, jobID)
	return nil
}

func (m *memoryIndex) MarkExpired(ctx context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[jobID]; ok {
		e.job.Status = domain.JobStatusExpired
	}
	return nil
}

func (m *memoryIndex) Search(ctx context.Context, q index.Query) (*index.Result, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	type hit struct {
		job   *domain.Job
		score int
	}

	queryTokens := tokenizeText(q.Filter.Query)

	m.mu.RLock()
	hits := make([]hit, 0)
	for _, e := range m.entries {
		if !matchesFilter(e.job, &q.Filter, now) {
			continue
		}

		score := 0
		if len(queryTokens) > 0 {
			score = scoreEntry(e, queryTokens)
			if score == 0 {
				continue
			}
		}

		hits = append(hits, hit{job: e.job, score: score})
	}
	m.mu.RUnlock()

	// Relevance when a query is present, recency otherwise. The job_id
	// tie-break keeps the ordering stable across pages.
	sort.Slice(hits, func(i, j int) bool {
		if len(queryTokens) > 0 && hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		pi, pj := hits[i].job.PostedAt(), hits[j].job.PostedAt()
		if !pi.Equal(pj) {
			return pi.After(pj)
		}
		return hits[i].job.JobID < hits[j].job.JobID
	})

	total := len(hits)
	start := q.Offset
	if start > total {
		start = total
	}
	end := total
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	ids := make([]string, 0, end-start)
	for _, h := range hits[start:end] {
		ids = append(ids, h.job.JobID)
	}

	return &index.Result{JobIDs: ids, Total: total}, nil
}

func (m *memoryIndex) Aggregate(ctx context.Context, filter domain.SearchFilter) (*index.Aggregates, error) {
	now := time.Now()

	aggs := &index.Aggregates{
		Locations:    make(map[string]int),
		SalaryRanges: make(map[string]int),
	}

	queryTokens := tokenizeText(filter.Query)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if !matchesFilter(e.job, &filter, now) {
			continue
		}
		// The query still filters here; it just does not rank.
		if len(queryTokens) > 0 && scoreEntry(e, queryTokens) == 0 {
			continue
		}

		if e.job.Location != "" {
			aggs.Locations[e.job.Location]++
		}

		if salary, ok := representativeSalary(e.job); ok {
			for _, b := range index.SalaryBuckets {
				if salary >= b.Min && (b.Max < 0 || salary < b.Max) {
					aggs.SalaryRanges[b.Label]++
					break
				}
			}
		}
	}

	return aggs, nil
}

// representativeSalary picks the value used for salary bucketing: the top of
// the band when present, else the bottom.
func representativeSalary(job *domain.Job) (int, bool) {
	if job.MaxSalary != nil {
		return *job.MaxSalary, true
	}
	if job.MinSalary != nil {
		return *job.MinSalary, true
	}
	return 0, false
}

func matchesFilter(job *domain.Job, f *domain.SearchFilter, now time.Time) bool {
	if job.IsExpired(now) {
		return false
	}

	if f.Location != "" && !strings.EqualFold(job.Location, f.Location) {
		return false
	}

	if f.Remote != nil && job.Remote != *f.Remote {
		return false
	}

	if f.Provider != "" && job.ProviderID != f.Provider {
		return false
	}

	if f.MinSalary != nil || f.MaxSalary != nil {
		// Band overlap; jobs without salary data never match a salary filter.
		jobMin, jobMax, ok := salaryBand(job)
		if !ok {
			return false
		}
		if f.MinSalary != nil && jobMax < *f.MinSalary {
			return false
		}
		if f.MaxSalary != nil && jobMin > *f.MaxSalary {
			return false
		}
	}

	if f.PostedAfter != "" {
		after, err := time.Parse(time.RFC3339, f.PostedAfter)
		if err != nil || job.PostedAt().Before(after) {
			return false
		}
	}

	return true
}

func salaryBand(job *domain.Job) (int, int, bool) {
	if job.MinSalary == nil && job.MaxSalary == nil {
		return 0, 0, false
	}
	min, max := 0, 0
	if job.MinSalary != nil {
		min = *job.MinSalary
		max = min
	}
	if job.MaxSalary != nil {
		max = *job.MaxSalary
		if job.MinSalary == nil {
			min = max
		}
	}
	return min, max, true
}

func scoreEntry(e *entry, queryTokens []string) int {
	score := 0
	for _, tok := range queryTokens {
		score += e.tokens[tok]
	}
	return score
}

// tokenize builds the weighted term-frequency map for a job. Title terms
// count triple, company and tag terms double.
func tokenize(job *domain.Job) map[string]int {
	tokens := make(map[string]int)
	for _, t := range tokenizeText(job.Title) {
		tokens[t] += 3
	}
	for _, t := range tokenizeText(job.Company) {
		tokens[t] += 2
	}
	for _, tag := range job.Tags {
		for _, t := range tokenizeText(tag) {
			tokens[t] += 2
		}
	}
	for _, t := range tokenizeText(job.Description) {
		tokens[t]++
	}
	return tokens
}

func tokenizeText(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
