package routes

import (
	"net/http"

	"jobfinder/commons/routes"
	"jobfinder/internal/dto"
	"jobfinder/internal/handler"
	"jobfinder/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitSyncRoutes(
	router *gin.Engine,
	syncHandler *handler.SyncHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	deps := routes.RouteDependencies{
		Logger: log,
	}

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.TriggerSyncRequest, dto.TriggerSyncResponse]{
			Path:        "/sync/trigger",
			Method:      http.MethodPost,
			ServiceFunc: syncHandler.TriggerSyncService,
			RequireAuth: true,
		},
	)
}
