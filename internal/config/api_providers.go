package config

import (
	"context"
	"strings"

	commonsconfig "jobfinder/commons/config"
	"jobfinder/commons/routes"
	"jobfinder/commons/server"
	cache "jobfinder/internal/cache/iface"
	"jobfinder/internal/events"
	ebemitter "jobfinder/internal/events/eventbridge"
	"jobfinder/internal/handler"
	index "jobfinder/internal/index/iface"
	"jobfinder/internal/index/memory"
	"jobfinder/internal/logger"
	"jobfinder/internal/repository/dynamodb"
	repository "jobfinder/internal/repository/iface"
	internalRoutes "jobfinder/internal/routes"
	"jobfinder/internal/search"
	"jobfinder/internal/secrets"
	"jobfinder/internal/service"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Repository Providers

func ProvideJobRepository(client *awsdynamodb.Client, log logger.Logger) repository.JobRepository {
	table := commonsconfig.GetEnv("JOBS_TABLE", "job-finder-jobs")
	return dynamodb.NewJobRepository(client, table, log)
}

func ProvideUserRepository(client *awsdynamodb.Client, log logger.Logger) repository.UserRepository {
	table := commonsconfig.GetEnv("USERS_TABLE", "job-finder-users")
	return dynamodb.NewUserRepository(client, table, log)
}

func ProvideSavedSearchRepository(client *awsdynamodb.Client, log logger.Logger) repository.SavedSearchRepository {
	table := commonsconfig.GetEnv("SEARCHES_TABLE", "job-finder-searches")
	return dynamodb.NewSavedSearchRepository(client, table, log)
}

// Core Providers

func ProvideSearchIndex(log logger.Logger) index.Index {
	return memory.NewMemoryIndex(log)
}

// ProvideEventEmitter publishes to EventBridge when a bus is configured and
// degrades to a logging emitter otherwise, so local runs need no AWS setup.
func ProvideEventEmitter(client *eventbridge.Client, log logger.Logger) events.Emitter {
	busName := commonsconfig.GetEnv("EVENT_BUS_NAME", "")
	if busName == "" {
		return events.NewLogEmitter(log)
	}
	return ebemitter.NewEventBridgeEmitter(client, busName, log)
}

func ProvideSecretsStore(client *secretsmanager.Client, log logger.Logger) *secrets.Store {
	return secrets.NewStore(client, log)
}

// ProvideCursorCodec resolves the cursor signing secret. A Secrets Manager
// secret ID takes precedence over the plain env var.
func ProvideCursorCodec(store *secrets.Store, log logger.Logger) (*search.CursorCodec, error) {
	if secretID := commonsconfig.GetEnv("CURSOR_SECRET_ID", ""); secretID != "" {
		secret, err := store.GetSecret(context.Background(), secretID)
		if err != nil {
			return nil, err
		}
		return search.NewCursorCodec(secret), nil
	}
	return search.NewCursorCodec(commonsconfig.GetEnv("CURSOR_SECRET", "dev-cursor-secret")), nil
}

func ProvidePlanner(
	idx index.Index,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	c cache.Cache,
	emitter events.Emitter,
	codec *search.CursorCodec,
	log logger.Logger,
) *search.Planner {
	return search.NewPlanner(idx, jobRepo, userRepo, c, emitter, codec, log)
}

func ProvideIndexWarmer(
	jobRepo repository.JobRepository,
	idx index.Index,
	log logger.Logger,
) *service.IndexWarmer {
	providers := strings.Split(commonsconfig.GetEnv("SYNC_PROVIDERS", "mock"), ",")
	for i := range providers {
		providers[i] = strings.TrimSpace(providers[i])
	}
	return service.NewIndexWarmer(jobRepo, idx, providers, log)
}

// HTTP Providers

func ProvideJobHandler(log logger.Logger, planner *search.Planner) *handler.JobHandler {
	return handler.NewJobHandler(log, planner)
}

func ProvideSearchManagementHandler(log logger.Logger) *handler.SearchManagementHandler {
	return handler.NewSearchManagementHandler(log)
}

func ProvideAPIHealthHandler(log logger.Logger) *handler.HealthHandler {
	return handler.NewHealthHandler(log, "job-search-api")
}

func ProvideAPIRouterConfig(log logger.Logger) routes.RouterConfig {
	return routes.RouterConfig{
		ServiceName: "job-search-api",
		Version:     "v1",
	}
}

func ProvideAPIServerConfig() server.ServerConfig {
	return server.ServerConfig{
		Port: commonsconfig.GetEnv("API_PORT", "8080"),
	}
}

func ProvideAPIRouteInitializer(
	healthHandler *handler.HealthHandler,
	jobHandler *handler.JobHandler,
	smHandler *handler.SearchManagementHandler,
) func(*gin.Engine, routes.RouteDependencies) {
	return func(router *gin.Engine, deps routes.RouteDependencies) {
		internalRoutes.InitHealthRoutes(router, healthHandler, deps.Logger)
		internalRoutes.InitJobRoutes(router, jobHandler, deps.Logger)
		internalRoutes.InitSearchManagementRoutes(router, smHandler, deps.Logger)
	}
}

// Lifecycle Management

func ManageIndexWarmerLifecycle(lc fx.Lifecycle, warmer *service.IndexWarmer, srv *server.HTTPServer, log logger.Logger) {
	// Referencing the server pulls it into the dependency graph so FX
	// manages its lifecycle hooks.
	_ = srv

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("warming search index")
			return warmer.Warm(ctx)
		},
	})
}
