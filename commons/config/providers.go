package config

import (
	"context"

	"jobfinder/commons/routes"
	cache "jobfinder/internal/cache/iface"
	redisCache "jobfinder/internal/cache/redis"
	"jobfinder/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx/fxevent"
)

// ProvideLogger creates and configures the logger for the application
func ProvideLogger() (logger.Logger, error) {
	if GetEnv("ENVIRONMENT", "dev") == "dev" {
		return logger.NewZapLoggerForDev()
	}
	return logger.NewZapLogger()
}

// ProvideFxLogger creates the FX event logger using the application logger
func ProvideFxLogger(log logger.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{
		Logger: log.(*logger.ZapLogger).Logger(),
	}
}

// ProvideRouteDependencies creates route dependencies
func ProvideRouteDependencies(log logger.Logger) routes.RouteDependencies {
	return routes.RouteDependencies{
		Logger: log,
	}
}

// ProvideRouter creates and configures the Gin router with all routes
func ProvideRouter(
	config routes.RouterConfig,
	deps routes.RouteDependencies,
	routeInitializer func(*gin.Engine, routes.RouteDependencies),
) *gin.Engine {
	router := routes.NewRouter(config, deps)
	routeInitializer(router, deps)
	return router
}

// loadAWSConfig resolves AWS config, pointing at a custom endpoint
// (LocalStack) when AWS_ENDPOINT_URL is set.
func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	region := GetEnv("AWS_REGION", "us-east-1")
	endpoint := GetEnv("AWS_ENDPOINT_URL", "")

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	if endpoint != "" {
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:           endpoint,
					SigningRegion: region,
				}, nil
			})))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// ProvideSQSClient provides an SQS client (for LocalStack or AWS)
func ProvideSQSClient() (*sqs.Client, error) {
	cfg, err := loadAWSConfig(context.Background())
	if err != nil {
		return nil, err
	}
	return sqs.NewFromConfig(cfg), nil
}

// ProvideDynamoDBClient provides a DynamoDB client
func ProvideDynamoDBClient() (*awsdynamodb.Client, error) {
	cfg, err := loadAWSConfig(context.Background())
	if err != nil {
		return nil, err
	}
	return awsdynamodb.NewFromConfig(cfg), nil
}

// ProvideEventBridgeClient provides an EventBridge client for the event bus
func ProvideEventBridgeClient() (*eventbridge.Client, error) {
	cfg, err := loadAWSConfig(context.Background())
	if err != nil {
		return nil, err
	}
	return eventbridge.NewFromConfig(cfg), nil
}

// ProvideSecretsManagerClient provides a Secrets Manager client
func ProvideSecretsManagerClient() (*secretsmanager.Client, error) {
	cfg, err := loadAWSConfig(context.Background())
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// ProvideRedisCache provides a Redis cache client
func ProvideRedisCache(log logger.Logger) (cache.Cache, error) {
	addr := GetEnv("REDIS_ADDR", "localhost:6379")
	password := GetEnv("REDIS_PASSWORD", "")
	db := GetEnvInt("REDIS_DB", 0)

	return redisCache.NewRedisCache(addr, password, db, log)
}
