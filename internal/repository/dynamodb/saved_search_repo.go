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

type savedSearchRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    logger.Logger
}

// NewSavedSearchRepository creates a new DynamoDB saved search repository
func NewSavedSearchRepository(client *dynamodb.Client, tableName string, log logger.Logger) repository.SavedSearchRepository {
	return &savedSearchRepository{
		client:    client,
		tableName: tableName,
		logger:    log.With(logger.String("component", "saved_search_repository")),
	}
}

func (r *savedSearchRepository) Create(ctx context.Context, search *domain.SavedSearch) error {
	// Typed query params are checked before anything hits the table.
	if err := search.QueryParams.Validate(); err != nil {
		return fmt.Errorf("invalid query params: %w", err)
	}

	r.logger.Debug("creating saved search",
		logger.String("user_id", search.UserID),
		logger.String("search_id", search.SearchID))

	item, err := attributevalue.MarshalMap(search)
	if err != nil {
		return fmt.Errorf("failed to marshal saved search: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(search_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return repository.ErrConflict
		}
		r.logger.Error("failed to create saved search", logger.Error(err))
		return fmt.Errorf("failed to create saved search: %w", err)
	}

	return nil
}

func (r *savedSearchRepository) Get(ctx context.Context, userID, searchID string) (*domain.SavedSearch, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id":   &types.AttributeValueMemberS{Value: userID},
			"search_id": &types.AttributeValueMemberS{Value: searchID},
		},
	})
	if err != nil {
		r.logger.Error("failed to get saved search", logger.Error(err))
		return nil, fmt.Errorf("failed to get saved search: %w", err)
	}

	if result.Item == nil {
		return nil, repository.ErrNotFound
	}

	var search domain.SavedSearch
	if err := attributevalue.UnmarshalMap(result.Item, &search); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved search: %w", err)
	}

	return &search, nil
}

func (r *savedSearchRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedSearch, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		r.logger.Error("failed to list saved searches", logger.Error(err))
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}

	searches := make([]*domain.SavedSearch, 0, len(result.Items))
	for _, item := range result.Items {
		var search domain.SavedSearch
		if err := attributevalue.UnmarshalMap(item, &search); err != nil {
			r.logger.Warn("failed to unmarshal saved search", logger.Error(err))
			continue
		}
		searches = append(searches, &search)
	}

	return searches, nil
}

func (r *savedSearchRepository) Update(ctx context.Context, search *domain.SavedSearch) error {
	if err := search.QueryParams.Validate(); err != nil {
		return fmt.Errorf("invalid query params: %w", err)
	}

	search.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	item, err := attributevalue.MarshalMap(search)
	if err != nil {
		return fmt.Errorf("failed to marshal saved search: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(search_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return repository.ErrNotFound
		}
		r.logger.Error("failed to update saved search", logger.Error(err))
		return fmt.Errorf("failed to update saved search: %w", err)
	}

	return nil
}

func (r *savedSearchRepository) Delete(ctx context.Context, userID, searchID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id":   &types.AttributeValueMemberS{Value: userID},
			"search_id": &types.AttributeValueMemberS{Value: searchID},
		},
	})
	if err != nil {
		r.logger.Error("failed to delete saved search", logger.Error(err))
		return fmt.Errorf("failed to delete saved search: %w", err)
	}

	return nil
}
