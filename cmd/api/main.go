package main

import (
	"jobfinder/commons/config"
	"jobfinder/commons/server"
	internalConfig "jobfinder/internal/config"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.WithLogger(config.ProvideFxLogger),
		fx.Provide(
			config.ProvideLogger,
			config.ProvideRouteDependencies,
			config.ProvideDynamoDBClient,
			config.ProvideEventBridgeClient,
			config.ProvideSecretsManagerClient,
			config.ProvideRedisCache,
			internalConfig.ProvideJobRepository,
			internalConfig.ProvideUserRepository,
			internalConfig.ProvideSavedSearchRepository,
			internalConfig.ProvideSearchIndex,
			internalConfig.ProvideEventEmitter,
			internalConfig.ProvideSecretsStore,
			internalConfig.ProvideCursorCodec,
			internalConfig.ProvidePlanner,
			internalConfig.ProvideIndexWarmer,
			internalConfig.ProvideJobHandler,
			internalConfig.ProvideSearchManagementHandler,
			internalConfig.ProvideAPIHealthHandler,
			internalConfig.ProvideAPIRouterConfig,
			internalConfig.ProvideAPIServerConfig,
			internalConfig.ProvideAPIRouteInitializer,
			config.ProvideRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(internalConfig.ManageIndexWarmerLifecycle),
	).Run()
}
