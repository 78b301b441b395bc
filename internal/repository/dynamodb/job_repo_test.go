package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBatchGetClient struct {
	outputs []*dynamodb.BatchGetItemOutput
	err     error
	inputs  []*dynamodb.BatchGetItemInput
}

func (f *fakeBatchGetClient) BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.outputs[len(f.inputs)-1], nil
}

func keyFor(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"job_id": &types.AttributeValueMemberS{Value: id},
	}
}

func itemFor(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"job_id": &types.AttributeValueMemberS{Value: id},
		"title":  &types.AttributeValueMemberS{Value: "Backend Engineer"},
	}
}

func TestBatchGetChunkRetriesUnprocessedKeys(t *testing.T) {
	const table = "jobs"

	client := &fakeBatchGetClient{
		outputs: []*dynamodb.BatchGetItemOutput{
			{
				Responses: map[string][]map[string]types.AttributeValue{
					table: {itemFor("job-1")},
				},
				UnprocessedKeys: map[string]types.KeysAndAttributes{
					table: {Keys: []map[string]types.AttributeValue{keyFor("job-2")}},
				},
			},
			{
				Responses: map[string][]map[string]types.AttributeValue{
					table: {itemFor("job-2")},
				},
			},
		},
	}

	items, err := batchGetChunk(context.Background(), client, table,
		[]map[string]types.AttributeValue{keyFor("job-1"), keyFor("job-2")})

	require.NoError(t, err)
	assert.Len(t, items, 2)
	require.Len(t, client.inputs, 2)

	// The second request must carry only the unprocessed key.
	retried := client.inputs[1].RequestItems[table].Keys
	require.Len(t, retried, 1)
	assert.Equal(t, keyFor("job-2"), retried[0])
}

func TestBatchGetChunkGivesUpAfterAttemptBudget(t *testing.T) {
	const table = "jobs"

	stuck := &dynamodb.BatchGetItemOutput{
		UnprocessedKeys: map[string]types.KeysAndAttributes{
			table: {Keys: []map[string]types.AttributeValue{keyFor("job-1")}},
		},
	}
	client := &fakeBatchGetClient{
		outputs: []*dynamodb.BatchGetItemOutput{stuck, stuck, stuck},
	}

	_, err := batchGetChunk(context.Background(), client, table,
		[]map[string]types.AttributeValue{keyFor("job-1")})

	require.Error(t, err)
	assert.Len(t, client.inputs, maxBatchGetAttempts)
}

func TestBatchGetChunkPropagatesClientError(t *testing.T) {
	client := &fakeBatchGetClient{err: errors.New("throttled")}

	_, err := batchGetChunk(context.Background(), client, "jobs",
		[]map[string]types.AttributeValue{keyFor("job-1")})

	assert.Error(t, err)
}
