package eventbridge

import (
	"context"
	"encoding/json"
	"time"

	"jobfinder/internal/events"
	"jobfinder/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

const publishTimeout = 5 * time.Second

// PutEventsAPI is the slice of the EventBridge client the emitter needs.
type PutEventsAPI interface {
	PutEvents(ctx context.Context, params *awseventbridge.PutEventsInput, optFns ...func(*awseventbridge.Options)) (*awseventbridge.PutEventsOutput, error)
}

type eventBridgeEmitter struct {
	client  PutEventsAPI
	busName string
	logger  logger.Logger
}

// NewEventBridgeEmitter creates an emitter publishing to the named bus
func NewEventBridgeEmitter(client PutEventsAPI, busName string, log logger.Logger) events.Emitter {
	return &eventBridgeEmitter{
		client:  client,
		busName: busName,
		logger:  log.With(logger.String("component", "eventbridge_emitter")),
	}
}

// Emit hands the event off asynchronously. The caller's success path never
// waits for bus confirmation.
func (e *eventBridgeEmitter) Emit(ctx context.Context, event events.Event) {
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		e.logger.Error("failed to marshal event detail",
			logger.String("detail_type", event.DetailType),
			logger.Error(err))
		return
	}

	go func() {
		publishCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		out, err := e.client.PutEvents(publishCtx, &awseventbridge.PutEventsInput{
			Entries: []types.PutEventsRequestEntry{
				{
					EventBusName: aws.String(e.busName),
					Source:       aws.String(event.Source),
					DetailType:   aws.String(event.DetailType),
					Detail:       aws.String(string(detail)),
				},
			},
		})

		if err != nil {
			e.logger.Error("failed to publish event",
				logger.String("detail_type", event.DetailType),
				logger.Error(err))
			return
		}

		if out.FailedEntryCount > 0 {
			e.logger.Error("event bus rejected entry",
				logger.String("detail_type", event.DetailType),
				logger.Int("failed_count", int(out.FailedEntryCount)))
			return
		}

		e.logger.Debug("event published",
			logger.String("source", event.Source),
			logger.String("detail_type", event.DetailType))
	}()
}
