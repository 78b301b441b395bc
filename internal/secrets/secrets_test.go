package secrets

import (
	"context"
	"errors"
	"testing"

	"jobfinder/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsAPI struct {
	values map[string]*secretsmanager.GetSecretValueOutput
}

func (f *fakeSecretsAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	out, ok := f.values[aws.ToString(params.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return out, nil
}

func setupStore(t *testing.T, values map[string]*secretsmanager.GetSecretValueOutput) *Store {
	log, err := logger.NewZapLoggerForDev()
	require.NoError(t, err)
	return NewStore(&fakeSecretsAPI{values: values}, log)
}

func TestGetSecret(t *testing.T) {
	store := setupStore(t, map[string]*secretsmanager.GetSecretValueOutput{
		"providers/mock": {SecretString: aws.String(`{"api_key":"k-123"}`)},
		"providers/bin":  {SecretBinary: []byte("raw-bytes")},
		"providers/nil":  {},
	})
	ctx := context.Background()

	t.Run("string secret", func(t *testing.T) {
		raw, err := store.GetSecret(ctx, "providers/mock")
		require.NoError(t, err)
		assert.Equal(t, `{"api_key":"k-123"}`, raw)
	})

	t.Run("binary fallback", func(t *testing.T) {
		raw, err := store.GetSecret(ctx, "providers/bin")
		require.NoError(t, err)
		assert.Equal(t, "raw-bytes", raw)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := store.GetSecret(ctx, "providers/nil")
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := store.GetSecret(ctx, "providers/unknown")
		assert.Error(t, err)
	})
}

func TestGetSecretJSON(t *testing.T) {
	store := setupStore(t, map[string]*secretsmanager.GetSecretValueOutput{
		"providers/mock": {SecretString: aws.String(`{"api_key":"k-123"}`)},
		"providers/bad":  {SecretString: aws.String("not json")},
	})
	ctx := context.Background()

	var creds struct {
		APIKey string `json:"api_key"`
	}

	require.NoError(t, store.GetSecretJSON(ctx, "providers/mock", &creds))
	assert.Equal(t, "k-123", creds.APIKey)

	assert.Error(t, store.GetSecretJSON(ctx, "providers/bad", &creds))
}
