package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"jobfinder/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// GetSecretAPI is the slice of the Secrets Manager client we use.
type GetSecretAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Store fetches provider credentials from Secrets Manager.
type Store struct {
	client GetSecretAPI
	logger logger.Logger
}

func NewStore(client GetSecretAPI, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log.With(logger.String("component", "secrets_store")),
	}
}

// GetSecret returns the raw secret payload for the given secret ID.
func (s *Store) GetSecret(ctx context.Context, secretID string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		s.logger.Error("failed to fetch secret",
			logger.String("secret_id", secretID),
			logger.Error(err))
		return "", fmt.Errorf("get secret %s: %w", secretID, err)
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if len(out.SecretBinary) > 0 {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("secret %s has no payload", secretID)
}

// GetSecretJSON unmarshals a JSON secret payload into out.
func (s *Store) GetSecretJSON(ctx context.Context, secretID string, out any) error {
	raw, err := s.GetSecret(ctx, secretID)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("secret %s is not valid JSON: %w", secretID, err)
	}
	return nil
}
