package config

import (
	"context"

	commonsconfig "jobfinder/commons/config"
	"jobfinder/commons/routes"
	"jobfinder/commons/server"
	syncqueue "jobfinder/internal/consumer/syncqueue/iface"
	"jobfinder/internal/events"
	"jobfinder/internal/handler"
	index "jobfinder/internal/index/iface"
	"jobfinder/internal/ingest"
	"jobfinder/internal/logger"
	"jobfinder/internal/provider"
	repository "jobfinder/internal/repository/iface"
	internalRoutes "jobfinder/internal/routes"
	"jobfinder/internal/secrets"
	"jobfinder/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Sync Service Providers

func ProvideProviderRegistry(store *secrets.Store, log logger.Logger) *provider.Registry {
	mockSecretID := commonsconfig.GetEnv("MOCK_PROVIDER_SECRET_ID", "")
	return provider.NewRegistry(
		provider.NewMockAdapter(store, mockSecretID, log),
	)
}

func ProvidePipeline(
	jobRepo repository.JobRepository,
	idx index.Index,
	emitter events.Emitter,
	log logger.Logger,
) *ingest.Pipeline {
	return ingest.NewPipeline(jobRepo, idx, emitter, log)
}

func ProvideSyncScheduler(
	consumer syncqueue.SyncConsumer,
	registry *provider.Registry,
	pipeline *ingest.Pipeline,
	log logger.Logger,
) service.ISyncScheduler {
	intervalHours := commonsconfig.GetEnvInt("SYNC_INTERVAL_HOURS", 6)
	return service.NewSyncScheduler(consumer, registry, pipeline, intervalHours, log)
}

// HTTP Providers

func ProvideSyncHandler(log logger.Logger, scheduler service.ISyncScheduler) *handler.SyncHandler {
	return handler.NewSyncHandler(log, scheduler)
}

func ProvideSyncHealthHandler(log logger.Logger) *handler.HealthHandler {
	return handler.NewHealthHandler(log, "job-sync")
}

func ProvideSyncRouterConfig(log logger.Logger) routes.RouterConfig {
	return routes.RouterConfig{
		ServiceName: "job-sync",
		Version:     "v1",
	}
}

func ProvideSyncServerConfig() server.ServerConfig {
	return server.ServerConfig{
		Port: commonsconfig.GetEnv("SYNC_PORT", "8081"),
	}
}

func ProvideSyncRouteInitializer(
	healthHandler *handler.HealthHandler,
	syncHandler *handler.SyncHandler,
) func(*gin.Engine, routes.RouteDependencies) {
	return func(router *gin.Engine, deps routes.RouteDependencies) {
		internalRoutes.InitHealthRoutes(router, healthHandler, deps.Logger)
		internalRoutes.InitSyncRoutes(router, syncHandler, deps.Logger)
	}
}

// Lifecycle Management

func ManageSyncSchedulerLifecycle(lc fx.Lifecycle, scheduler service.ISyncScheduler, srv *server.HTTPServer, log logger.Logger) {
	_ = srv

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting sync scheduler cron jobs")
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping sync scheduler")
			return scheduler.Stop(ctx)
		},
	})
}
