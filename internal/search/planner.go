package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	cache "jobfinder/internal/cache/iface"
	"jobfinder/internal/domain"
	"jobfinder/internal/dto"
	"jobfinder/internal/events"
	index "jobfinder/internal/index/iface"
	"jobfinder/internal/logger"
	repository "jobfinder/internal/repository/iface"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	searchCacheTTL = time.Minute
)

// Planner translates API requests into index queries, hydrates results from
// the document store, and emits read-path events.
type Planner struct {
	index    index.Index
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	cache    cache.Cache
	emitter  events.Emitter
	codec    *CursorCodec
	logger   logger.Logger
}

// NewPlanner creates a query planner
func NewPlanner(
	idx index.Index,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	c cache.Cache,
	emitter events.Emitter,
	codec *CursorCodec,
	log logger.Logger,
) *Planner {
	return &Planner{
		index:    idx,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		cache:    c,
		emitter:  emitter,
		codec:    codec,
		logger:   log.With(logger.String("component", "query_planner")),
	}
}

// Search runs a job search. userID may be empty for anonymous requests; when
// present, the user's stored defaults fill parameters the request omits.
func (p *Planner) Search(ctx context.Context, req dto.SearchJobsRequest, userID string) (dto.SearchJobsResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 || limit > MaxPageSize {
		return dto.SearchJobsResponse{}, validationErrorf("limit must be between 1 and %d", MaxPageSize)
	}

	filter := p.buildFilter(ctx, req, userID)
	if err := filter.Validate(); err != nil {
		return dto.SearchJobsResponse{}, &ValidationError{Message: err.Error()}
	}

	fp := Fingerprint(&filter)

	offset := 0
	if req.Cursor != "" {
		cursorOffset, cursorFp, err := p.codec.Decode(req.Cursor)
		if err != nil {
			return dto.SearchJobsResponse{}, validationErrorf("invalid cursor")
		}
		// A cursor replayed against different parameters fails closed.
		if cursorFp != fp {
			return dto.SearchJobsResponse{}, validationErrorf("cursor does not match query parameters")
		}
		offset = cursorOffset
	}

	cacheKey := fmt.Sprintf("search:%s:%d:%d", fp, offset, limit)
	if cached, ok := p.cachedResponse(ctx, cacheKey); ok {
		// A cached page is still a search the caller performed.
		p.emitter.Emit(ctx, events.NewJobSearchPerformed(&filter, cached.Total))
		return cached, nil
	}

	result, err := p.index.Search(ctx, index.Query{
		Filter: filter,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return dto.SearchJobsResponse{}, fmt.Errorf("index search failed: %w", err)
	}

	hydrated, err := p.jobRepo.GetBatch(ctx, result.JobIDs)
	if err != nil {
		return dto.SearchJobsResponse{}, fmt.Errorf("failed to hydrate jobs: %w", err)
	}

	jobs := make([]domain.Job, 0, len(hydrated))
	for _, job := range hydrated {
		jobs = append(jobs, *job)
	}

	resp := dto.SearchJobsResponse{
		Jobs:  jobs,
		Total: result.Total,
	}

	if offset+len(result.JobIDs) < result.Total {
		next, err := p.codec.Encode(offset+len(result.JobIDs), fp)
		if err != nil {
			return dto.SearchJobsResponse{}, fmt.Errorf("failed to encode cursor: %w", err)
		}
		resp.NextCursor = next
	}

	p.storeResponse(ctx, cacheKey, resp)
	p.emitter.Emit(ctx, events.NewJobSearchPerformed(&filter, result.Total))

	return resp, nil
}

// GetJob is a point lookup by composite key. Expired jobs are treated as
// absent.
func (p *Planner) GetJob(ctx context.Context, jobID, userID string) (dto.GetJobResponse, error) {
	job, err := p.jobRepo.Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.GetJobResponse{}, repository.ErrNotFound
		}
		return dto.GetJobResponse{}, fmt.Errorf("failed to get job: %w", err)
	}

	if job.IsExpired(time.Now()) {
		return dto.GetJobResponse{}, repository.ErrNotFound
	}

	p.emitter.Emit(ctx, events.NewJobViewed(jobID, userID))

	return dto.GetJobResponse{Job: *job}, nil
}

// Aggregations applies the search predicates (minus ranking) and returns
// facet counts. Zero-count buckets are omitted.
func (p *Planner) Aggregations(ctx context.Context, req dto.AggregationsRequest) (dto.AggregationsResponse, error) {
	filter := domain.SearchFilter{
		Query:     req.Query,
		Location:  req.Location,
		Remote:    req.Remote,
		MinSalary: req.MinSalary,
		MaxSalary: req.MaxSalary,
		Provider:  req.Provider,
	}
	if err := filter.Validate(); err != nil {
		return dto.AggregationsResponse{}, &ValidationError{Message: err.Error()}
	}

	aggs, err := p.index.Aggregate(ctx, filter)
	if err != nil {
		return dto.AggregationsResponse{}, fmt.Errorf("aggregation failed: %w", err)
	}

	resp := dto.AggregationsResponse{
		Locations:    make([]dto.LocationBucket, 0, len(aggs.Locations)),
		SalaryRanges: make([]dto.SalaryRangeBucket, 0, len(aggs.SalaryRanges)),
	}

	for location, count := range aggs.Locations {
		resp.Locations = append(resp.Locations, dto.LocationBucket{Location: location, Count: count})
	}
	sort.Slice(resp.Locations, func(i, j int) bool {
		if resp.Locations[i].Count != resp.Locations[j].Count {
			return resp.Locations[i].Count > resp.Locations[j].Count
		}
		return resp.Locations[i].Location < resp.Locations[j].Location
	})

	// Salary ranges keep the fixed bucket order.
	for _, bucket := range index.SalaryBuckets {
		if count, ok := aggs.SalaryRanges[bucket.Label]; ok {
			resp.SalaryRanges = append(resp.SalaryRanges, dto.SalaryRangeBucket{Range: bucket.Label, Count: count})
		}
	}

	return resp, nil
}

// buildFilter merges the request with the user's stored defaults. A failing
// user lookup degrades to no defaults; it never fails the search.
func (p *Planner) buildFilter(ctx context.Context, req dto.SearchJobsRequest, userID string) domain.SearchFilter {
	filter := domain.SearchFilter{
		Query:       req.Query,
		Location:    req.Location,
		Remote:      req.Remote,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		Provider:    req.Provider,
		PostedAfter: req.PostedAfter,
	}

	if userID == "" {
		return filter
	}
	if filter.Location != "" && filter.MinSalary != nil && filter.MaxSalary != nil {
		return filter
	}

	user, err := p.userRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			p.logger.Warn("failed to load user defaults",
				logger.String("user_id", userID),
				logger.Error(err))
		}
		return filter
	}

	prefs := user.Preferences
	if filter.Location == "" && prefs.DefaultLocation != "" {
		filter.Location = prefs.DefaultLocation
	}
	if filter.MinSalary == nil && filter.MaxSalary == nil && prefs.DefaultSalaryRange != nil {
		min, max := prefs.DefaultSalaryRange.Min, prefs.DefaultSalaryRange.Max
		filter.MinSalary = &min
		filter.MaxSalary = &max
	}

	return filter
}

func (p *Planner) cachedResponse(ctx context.Context, key string) (dto.SearchJobsResponse, bool) {
	raw, err := p.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Warn("search cache read failed", logger.Error(err))
		}
		return dto.SearchJobsResponse{}, false
	}

	var resp dto.SearchJobsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		p.logger.Warn("search cache entry corrupt", logger.Error(err))
		return dto.SearchJobsResponse{}, false
	}

	return resp, true
}

func (p *Planner) storeResponse(ctx context.Context, key string, resp dto.SearchJobsResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, key, string(raw), searchCacheTTL); err != nil {
		p.logger.Warn("search cache write failed", logger.Error(err))
	}
}
