package dynamodb

import (
	"context"
	"fmt"

	"jobfinder/internal/domain"
	"jobfinder/internal/logger"
	repository "jobfinder/internal/repository/iface"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type userRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    logger.Logger
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client *dynamodb.Client, tableName string, log logger.Logger) repository.UserRepository {
	return &userRepository{
		client:    client,
		tableName: tableName,
		logger:    log.With(logger.String("component", "user_repository")),
	}
}

func (r *userRepository) Get(ctx context.Context, userID string) (*domain.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		r.logger.Error("failed to get user", logger.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if result.Item == nil {
		return nil, repository.ErrNotFound
	}

	var user domain.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Put(ctx context.Context, user *domain.User) error {
	r.logger.Debug("putting user",
		logger.String("user_id", user.UserID))

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		r.logger.Error("failed to put user", logger.Error(err))
		return fmt.Errorf("failed to put user: %w", err)
	}

	return nil
}
