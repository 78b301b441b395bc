package routes

import (
	"net/http"

	"jobfinder/commons/routes"
	"jobfinder/internal/dto"
	"jobfinder/internal/handler"
	"jobfinder/internal/logger"

	"github.com/gin-gonic/gin"
)

func InitJobRoutes(
	router *gin.Engine,
	jobHandler *handler.JobHandler,
	log logger.Logger,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	deps := routes.RouteDependencies{
		Logger: log,
	}

	// Register search route
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.SearchJobsRequest, dto.SearchJobsResponse]{
			Path:        "/jobs",
			Method:      http.MethodGet,
			ServiceFunc: jobHandler.SearchJobsService,
			RequireAuth: false,
		},
	)

	// Register aggregations route. Static path, registered alongside the
	// :job_id param route below.
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.AggregationsRequest, dto.AggregationsResponse]{
			Path:        "/jobs/aggregations",
			Method:      http.MethodGet,
			ServiceFunc: jobHandler.AggregationsService,
			RequireAuth: false,
		},
	)

	// Register get job route
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.GetJobRequest, dto.GetJobResponse]{
			Path:        "/jobs/:job_id",
			Method:      http.MethodGet,
			ServiceFunc: jobHandler.GetJobService,
			RequireAuth: false,
		},
	)
}
