package handler

import (
	"context"
	"fmt"
	"strconv"

	"jobfinder/commons/error_handler"
	"jobfinder/commons/handler"
	"jobfinder/internal/dto"
	"jobfinder/internal/identity"
	"jobfinder/internal/logger"
	repository "jobfinder/internal/repository/iface"
	"jobfinder/internal/search"
)

type JobHandler struct {
	logger  logger.Logger
	planner *search.Planner
}

func NewJobHandler(log logger.Logger, planner *search.Planner) *JobHandler {
	return &JobHandler{
		logger:  log.With(logger.String("component", "job_handler")),
		planner: planner,
	}
}

func (h *JobHandler) SearchJobsService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.SearchJobsRequest],
) (dto.SearchJobsResponse, *error_handler.ErrorCollection) {
	req, errMsg := parseSearchParams(ioutil.QueryParams)
	if errMsg != "" {
		return dto.SearchJobsResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, errMsg, nil)
	}

	claims := identity.FromHeaders(ioutil.Headers)

	resp, err := h.planner.Search(ctx, req, claims.UserID)
	if err != nil {
		if search.IsValidationError(err) {
			return dto.SearchJobsResponse{}, error_handler.NewErrorCollection().
				AddError(error_handler.CodeValidationError, err.Error(), nil)
		}
		h.logger.Error("job search failed", logger.Error(err))
		return dto.SearchJobsResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "failed to search jobs", nil)
	}

	return resp, nil
}

func (h *JobHandler) GetJobService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.GetJobRequest],
) (dto.GetJobResponse, *error_handler.ErrorCollection) {
	jobID := ioutil.PathParams["job_id"]
	if jobID == "" {
		return dto.GetJobResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, "job_id is required", nil)
	}

	claims := identity.FromHeaders(ioutil.Headers)

	resp, err := h.planner.GetJob(ctx, jobID, claims.UserID)
	if err != nil {
		if repository.IsNotFoundError(err) {
			return dto.GetJobResponse{}, error_handler.NewErrorCollection().
				AddError(error_handler.CodeNotFound, fmt.Sprintf("job %s not found", jobID), nil)
		}
		h.logger.Error("failed to get job",
			logger.String("job_id", jobID),
			logger.Error(err))
		return dto.GetJobResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "failed to get job", nil)
	}

	return resp, nil
}

func (h *JobHandler) AggregationsService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.AggregationsRequest],
) (dto.AggregationsResponse, *error_handler.ErrorCollection) {
	req, errMsg := parseAggregationParams(ioutil.QueryParams)
	if errMsg != "" {
		return dto.AggregationsResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, errMsg, nil)
	}

	resp, err := h.planner.Aggregations(ctx, req)
	if err != nil {
		if search.IsValidationError(err) {
			return dto.AggregationsResponse{}, error_handler.NewErrorCollection().
				AddError(error_handler.CodeValidationError, err.Error(), nil)
		}
		h.logger.Error("aggregation query failed", logger.Error(err))
		return dto.AggregationsResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "failed to aggregate jobs", nil)
	}

	return resp, nil
}

func parseSearchParams(params map[string]string) (dto.SearchJobsRequest, string) {
	req := dto.SearchJobsRequest{
		Query:       params["q"],
		Location:    params["location"],
		Provider:    params["provider"],
		PostedAfter: params["posted_after"],
		Cursor:      params["cursor"],
	}

	if v, ok := params["remote"]; ok {
		remote, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Sprintf("remote must be a boolean, got %q", v)
		}
		req.Remote = &remote
	}

	var errMsg string
	if req.MinSalary, errMsg = parseIntParam(params, "min_salary"); errMsg != "" {
		return req, errMsg
	}
	if req.MaxSalary, errMsg = parseIntParam(params, "max_salary"); errMsg != "" {
		return req, errMsg
	}

	if v, ok := params["limit"]; ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Sprintf("limit must be an integer, got %q", v)
		}
		req.Limit = limit
	}

	return req, ""
}

func parseAggregationParams(params map[string]string) (dto.AggregationsRequest, string) {
	req := dto.AggregationsRequest{
		Query:    params["q"],
		Location: params["location"],
		Provider: params["provider"],
	}

	if v, ok := params["remote"]; ok {
		remote, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Sprintf("remote must be a boolean, got %q", v)
		}
		req.Remote = &remote
	}

	var errMsg string
	if req.MinSalary, errMsg = parseIntParam(params, "min_salary"); errMsg != "" {
		return req, errMsg
	}
	if req.MaxSalary, errMsg = parseIntParam(params, "max_salary"); errMsg != "" {
		return req, errMsg
	}

	return req, ""
}

func parseIntParam(params map[string]string, key string) (*int, string) {
	v, ok := params[key]
	if !ok || v == "" {
		return nil, ""
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Sprintf("%s must be an integer, got %q", key, v)
	}
	return &n, ""
}
