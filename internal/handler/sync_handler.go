package handler

import (
	"context"
	"fmt"

	"jobfinder/commons/error_handler"
	"jobfinder/commons/handler"
	"jobfinder/internal/domain"
	"jobfinder/internal/dto"
	"jobfinder/internal/logger"
	"jobfinder/internal/service"
)

type SyncHandler struct {
	logger    logger.Logger
	scheduler service.ISyncScheduler
}

func NewSyncHandler(log logger.Logger, scheduler service.ISyncScheduler) *SyncHandler {
	return &SyncHandler{
		logger:    log.With(logger.String("component", "sync_handler")),
		scheduler: scheduler,
	}
}

// TriggerSyncService enqueues a one-off provider sync.
func (h *SyncHandler) TriggerSyncService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.TriggerSyncRequest],
) (dto.TriggerSyncResponse, *error_handler.ErrorCollection) {
	req := ioutil.Body

	if req.Provider == "" {
		return dto.TriggerSyncResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, "provider is required", nil)
	}

	syncType := domain.SyncType(req.SyncType)
	if syncType == "" {
		syncType = domain.SyncTypeFull
	}
	if syncType != domain.SyncTypeFull && syncType != domain.SyncTypeIncremental {
		return dto.TriggerSyncResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError,
				fmt.Sprintf("sync_type must be %q or %q", domain.SyncTypeFull, domain.SyncTypeIncremental), nil)
	}

	if err := h.scheduler.TriggerSync(ctx, req.Provider, syncType); err != nil {
		h.logger.Error("failed to trigger sync",
			logger.String("provider", req.Provider),
			logger.Error(err))
		return dto.TriggerSyncResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, err.Error(), nil)
	}

	return dto.TriggerSyncResponse{
		Provider: req.Provider,
		SyncType: string(syncType),
		Queued:   true,
	}, nil
}
