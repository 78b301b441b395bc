package syncqueue

import (
	"context"

	commonsconfig "jobfinder/commons/config"
	syncqueue "jobfinder/internal/consumer/syncqueue/iface"
	syncimpl "jobfinder/internal/consumer/syncqueue/impl"
	"jobfinder/internal/dto"
	"jobfinder/internal/ingest"
	"jobfinder/internal/logger"
	"jobfinder/internal/provider"
	queue "jobfinder/internal/queue/iface"
	"jobfinder/internal/queue/sqs"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/fx"
)

// SyncQueueParams holds dependencies for the sync queue
type SyncQueueParams struct {
	fx.In

	Logger    logger.Logger
	SQSClient *awssqs.Client
	Registry  *provider.Registry
	Pipeline  *ingest.Pipeline
}

// SyncQueueResult holds what this module provides
type SyncQueueResult struct {
	fx.Out

	Consumer syncqueue.SyncConsumer
	Queue    queue.Queue `name:"sync_queue"`
}

// ProvideSyncQueueAndConsumer wires the queue and its consumer together.
// The processor closes over the consumer variable so the queue can be built
// first and handed to the consumer.
func ProvideSyncQueueAndConsumer(params SyncQueueParams) SyncQueueResult {
	var consumer syncqueue.SyncConsumer

	q := sqs.NewSQSQueue(
		params.SQSClient,
		sqs.QueueConfig{
			QueueURL:        commonsconfig.GetEnv("SYNC_QUEUE_URL", "http://localhost:4566/000000000000/job-sync-queue"),
			WorkerCount:     commonsconfig.GetEnvInt("SYNC_WORKER_COUNT", 2),
			MaxMessages:     1,
			WaitTimeSeconds: 20,
		},
		queue.MessageProcessorFunc[dto.SyncRequestMessage](func(ctx context.Context, msg dto.SyncRequestMessage) bool {
			return consumer.ProcessMessage(ctx, msg)
		}),
		params.Logger,
	)

	consumer = syncimpl.NewSyncConsumer(params.Logger, q, params.Registry, params.Pipeline)

	return SyncQueueResult{
		Consumer: consumer,
		Queue:    q,
	}
}

// SyncQueueModule provides the FX module for the sync queue
func SyncQueueModule() fx.Option {
	return fx.Options(
		fx.Provide(
			ProvideSyncQueueAndConsumer,
		),
		fx.Invoke(func(params struct {
			fx.In
			Lifecycle fx.Lifecycle
			Queue     queue.Queue `name:"sync_queue"`
			Logger    logger.Logger
		}) {
			params.Lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					params.Logger.Info("starting sync queue consumer")
					return params.Queue.StartConsumer(ctx)
				},
				OnStop: func(ctx context.Context) error {
					params.Logger.Info("stopping sync queue consumer")
					return params.Queue.StopConsumer(ctx)
				},
			})
		}),
	)
}
