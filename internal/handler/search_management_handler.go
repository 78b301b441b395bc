package handler

import (
	"context"

	"jobfinder/commons/error_handler"
	"jobfinder/commons/handler"
	"jobfinder/internal/dto"
	"jobfinder/internal/logger"
)

// SearchManagementHandler owns the saved-search and user-profile route
// families. All of them answer 501 until those surfaces ship; registering
// them now reserves the paths and the response envelope.
type SearchManagementHandler struct {
	logger logger.Logger
}

func NewSearchManagementHandler(log logger.Logger) *SearchManagementHandler {
	return &SearchManagementHandler{
		logger: log.With(logger.String("component", "search_management_handler")),
	}
}

func notImplemented[T any](resp T) (T, *error_handler.ErrorCollection) {
	return resp, error_handler.NewErrorCollection().
		AddError(error_handler.CodeNotImplemented, "endpoint not implemented", nil)
}

func (h *SearchManagementHandler) CreateSearchService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.CreateSearchRequest],
) (dto.CreateSearchResponse, *error_handler.ErrorCollection) {
	return notImplemented(dto.CreateSearchResponse{})
}

func (h *SearchManagementHandler) ListSearchesService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.ListSearchesRequest],
) (dto.ListSearchesResponse, *error_handler.ErrorCollection) {
	return notImplemented(dto.ListSearchesResponse{})
}

func (h *SearchManagementHandler) UpdateSearchService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.UpdateSearchRequest],
) (dto.UpdateSearchResponse, *error_handler.ErrorCollection) {
	return notImplemented(dto.UpdateSearchResponse{})
}

func (h *SearchManagementHandler) DeleteSearchService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.DeleteSearchRequest],
) (dto.DeleteSearchResponse, *error_handler.ErrorCollection) {
	return notImplemented(dto.DeleteSearchResponse{})
}

func (h *SearchManagementHandler) GetUserProfileService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.GetUserProfileRequest],
) (dto.GetUserProfileResponse, *error_handler.ErrorCollection) {
	return notImplemented(dto.GetUserProfileResponse{})
}

func (h *SearchManagementHandler) UpdateUserProfileService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.UpdateUserProfileRequest],
) (dto.UpdateUserProfileResponse, *error_handler.ErrorCollection) {
	return notImplemented(dto.UpdateUserProfileResponse{})
}
