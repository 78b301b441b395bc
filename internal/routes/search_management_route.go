package routes

import (
	"net/http"

	"jobfinder/commons/routes"
	"jobfinder/internal/dto"
	"jobfinder/internal/handler"
	"jobfinder/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitSearchManagementRoutes(
	router *gin.Engine,
	smHandler *handler.SearchManagementHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	deps := routes.RouteDependencies{
		Logger: log,
	}

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.CreateSearchRequest, dto.CreateSearchResponse]{
			Path:        "/searches",
			Method:      http.MethodPost,
			ServiceFunc: smHandler.CreateSearchService,
			RequireAuth: true,
		},
	)

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.ListSearchesRequest, dto.ListSearchesResponse]{
			Path:        "/searches",
			Method:      http.MethodGet,
			ServiceFunc: smHandler.ListSearchesService,
			RequireAuth: true,
		},
	)

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.UpdateSearchRequest, dto.UpdateSearchResponse]{
			Path:        "/searches/:search_id",
			Method:      http.MethodPut,
			ServiceFunc: smHandler.UpdateSearchService,
			RequireAuth: true,
		},
	)

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.DeleteSearchRequest, dto.DeleteSearchResponse]{
			Path:        "/searches/:search_id",
			Method:      http.MethodDelete,
			ServiceFunc: smHandler.DeleteSearchService,
			RequireAuth: true,
		},
	)

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.GetUserProfileRequest, dto.GetUserProfileResponse]{
			Path:        "/users/profile",
			Method:      http.MethodGet,
			ServiceFunc: smHandler.GetUserProfileService,
			RequireAuth: true,
		},
	)

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.UpdateUserProfileRequest, dto.UpdateUserProfileResponse]{
			Path:        "/users/profile",
			Method:      http.MethodPut,
			ServiceFunc: smHandler.UpdateUserProfileService,
			RequireAuth: true,
		},
	)
}
