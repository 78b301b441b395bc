package dynamodb

import (
	"context"
	"fmt"
	"time"

	"jobfinder/internal/domain"
	"jobfinder/internal/logger"
	repository "jobfinder/internal/repository/iface"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	batchGetChunkSize   = 100
	maxBatchGetAttempts = 3
)

// batchGetAPI is the slice of the DynamoDB client that GetBatch uses.
type batchGetAPI interface {
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
}

type jobRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    logger.Logger
}

// NewJobRepository creates a new DynamoDB job repository
func NewJobRepository(client *dynamodb.Client, tableName string, log logger.Logger) repository.JobRepository {
	return &jobRepository{
		client:    client,
		tableName: tableName,
		logger:    log.With(logger.String("component", "job_repository")),
	}
}

func (r *jobRepository) Upsert(ctx context.Context, job *domain.Job) error {
	r.logger.Debug("upserting job",
		logger.String("job_id", job.JobID))

	item, err := attributevalue.MarshalMap(job)
	if err != nil {
		r.logger.Error("failed to marshal job", logger.Error(err))
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})

	if err != nil {
		r.logger.Error("failed to upsert job", logger.Error(err))
		return fmt.Errorf("failed to upsert job: %w", err)
	}

	return nil
}

func (r *jobRepository) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	r.logger.Debug("getting job by ID",
		logger.String("job_id", jobID))

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"job_id": &types.AttributeValueMemberS{Value: jobID},
		},
	})

	if err != nil {
		r.logger.Error("failed to get job", logger.Error(err))
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if result.Item == nil {
		return nil, repository.ErrNotFound
	}

	var job domain.Job
	if err := attributevalue.UnmarshalMap(result.Item, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return &job, nil
}

func (r *jobRepository) GetBatch(ctx context.Context, jobIDs []string) ([]*domain.Job, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	byID := make(map[string]*domain.Job, len(jobIDs))

	for start := 0; start < len(jobIDs); start += batchGetChunkSize {
		end := start + batchGetChunkSize
		if end > len(jobIDs) {
			end = len(jobIDs)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range jobIDs[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"job_id": &types.AttributeValueMemberS{Value: id},
			})
		}

		items, err := batchGetChunk(ctx, r.client, r.tableName, keys)
		if err != nil {
			r.logger.Error("failed to batch get jobs", logger.Error(err))
			return nil, fmt.Errorf("failed to batch get jobs: %w", err)
		}

		for _, item := range items {
			var job domain.Job
			if err := attributevalue.UnmarshalMap(item, &job); err != nil {
				r.logger.Warn("failed to unmarshal job", logger.Error(err))
				continue
			}
			byID[job.JobID] = &job
		}
	}

	// Preserve the requested ordering; drop keys the store does not have.
	jobs := make([]*domain.Job, 0, len(jobIDs))
	for _, id := range jobIDs {
		if job, ok := byID[id]; ok {
			jobs = append(jobs, job)
		}
	}

	return jobs, nil
}

// batchGetChunk issues a BatchGetItem for one chunk of keys and re-requests
// any unprocessed keys until the chunk is fully served or the attempt budget
// runs out.
func batchGetChunk(ctx context.Context, client batchGetAPI, table string, keys []map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	items := make([]map[string]types.AttributeValue, 0, len(keys))

	for attempt := 1; ; attempt++ {
		result, err := client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				table: {Keys: keys},
			},
		})
		if err != nil {
			return nil, err
		}

		items = append(items, result.Responses[table]...)

		pending := result.UnprocessedKeys[table].Keys
		if len(pending) == 0 {
			return items, nil
		}
		if attempt >= maxBatchGetAttempts {
			return nil, fmt.Errorf("%d keys unprocessed after %d attempts", len(pending), attempt)
		}
		keys = pending
	}
}

func (r *jobRepository) ListActiveKeysByProvider(ctx context.Context, providerID string) ([]string, error) {
	r.logger.Debug("listing active job keys",
		logger.String("provider_id", providerID))

	keys := make([]string, 0)
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("provider_index"),
			KeyConditionExpression: aws.String("provider_id = :provider_id"),
			FilterExpression:       aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":provider_id": &types.AttributeValueMemberS{Value: providerID},
				":status":      &types.AttributeValueMemberS{Value: string(domain.JobStatusActive)},
			},
			ProjectionExpression: aws.String("job_id"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			r.logger.Error("failed to query jobs by provider", logger.Error(err))
			return nil, fmt.Errorf("failed to query jobs by provider: %w", err)
		}

		for _, item := range result.Items {
			if av, ok := item["job_id"].(*types.AttributeValueMemberS); ok {
				keys = append(keys, av.Value)
			}
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return keys, nil
}

func (r *jobRepository) Expire(ctx context.Context, jobID string) error {
	r.logger.Debug("expiring job",
		logger.String("job_id", jobID))

	now := time.Now().UTC().Format(time.RFC3339)

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"job_id": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression: aws.String("SET #status = :status, expires_at = :expires_at"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(domain.JobStatusExpired)},
			":expires_at": &types.AttributeValueMemberS{Value: now},
		},
		ConditionExpression: aws.String("attribute_exists(job_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return repository.ErrNotFound
		}
		r.logger.Error("failed to expire job", logger.Error(err))
		return fmt.Errorf("failed to expire job: %w", err)
	}

	return nil
}

func (r *jobRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	r.logger.Debug("reaping expired jobs",
		logger.String("cutoff", cutoff.Format(time.RFC3339)))

	deleted := make([]string, 0)
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("status_index"),
			KeyConditionExpression: aws.String("#status = :status"),
			FilterExpression:       aws.String("posted_date < :cutoff"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(domain.JobStatusExpired)},
				":cutoff": &types.AttributeValueMemberS{Value: cutoff.Format(time.RFC3339)},
			},
			ProjectionExpression: aws.String("job_id"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			r.logger.Error("failed to query expired jobs", logger.Error(err))
			return deleted, fmt.Errorf("failed to query expired jobs: %w", err)
		}

		for _, item := range result.Items {
			av, ok := item["job_id"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}

			_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"job_id": &types.AttributeValueMemberS{Value: av.Value},
				},
			})
			if err != nil {
				r.logger.Warn("failed to delete expired job",
					logger.String("job_id", av.Value),
					logger.Error(err))
				continue
			}
			deleted = append(deleted, av.Value)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	r.logger.Info("expired jobs reaped",
		logger.Int("count", len(deleted)))

	return deleted, nil
}
