package main

import (
	"jobfinder/commons/config"
	"jobfinder/commons/server"
	internalConfig "jobfinder/internal/config"
	sync_init "jobfinder/internal/consumer/syncqueue/init"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.WithLogger(config.ProvideFxLogger),
		fx.Provide(
			config.ProvideLogger,
			config.ProvideRouteDependencies,
			config.ProvideDynamoDBClient,
			config.ProvideSQSClient,
			config.ProvideEventBridgeClient,
			config.ProvideSecretsManagerClient,
			internalConfig.ProvideJobRepository,
			internalConfig.ProvideSearchIndex,
			internalConfig.ProvideEventEmitter,
			internalConfig.ProvideSecretsStore,
			internalConfig.ProvideProviderRegistry,
			internalConfig.ProvidePipeline,
			internalConfig.ProvideSyncScheduler,
			internalConfig.ProvideSyncHandler,
			internalConfig.ProvideSyncHealthHandler,
			internalConfig.ProvideSyncRouterConfig,
			internalConfig.ProvideSyncServerConfig,
			internalConfig.ProvideSyncRouteInitializer,
			config.ProvideRouter,
			server.NewHTTPServer,
		),
		sync_init.SyncQueueModule(),
		fx.Invoke(internalConfig.ManageSyncSchedulerLifecycle),
	).Run()
}
