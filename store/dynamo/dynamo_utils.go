package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func newDynamoDBClient(ctx context.Context, devMode bool, dynamodbEndpoint string) (*dynamodb.Client, error) {
	var cfg aws.Config
	var err error

	if devMode {
		// Load config with dummy credentials and region for local/dev
		cfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion("us-east-1"),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("dummy", "dummy", ""),
			),
		)
		if err != nil {
			return nil, err
		}

		// Override endpoint for DynamoDB locally
		return dynamodb.New(dynamodb.Options{
			Credentials:      cfg.Credentials,
			Region:           cfg.Region,
			EndpointResolver: dynamodb.EndpointResolverFromURL(dynamodbEndpoint),
		}), nil
	}

	// Production: default config (uses the task role and AWS endpoints)
	cfg, err = config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(cfg), nil
}

func getTables(client *dynamodb.Client, ctx context.Context) ([]string, error) {
	output, err := client.ListTables(ctx, &dynamodb.ListTablesInput{})
	if err != nil {
		return nil, err
	}

	return output.TableNames, nil
}

// queryPartition fetches every item under one partition key in sort-key
// order, following pagination until the partition is exhausted.
func queryPartition(dynamoStore *DynamoCanvasStore, ctx context.Context, pk string) ([]dynamoEntry, error) {
	var items []dynamoEntry
	var lastKey map[string]types.AttributeValue

	for {
		resp, err := dynamoStore.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &dynamoStore.tableName,
			KeyConditionExpression: aws.String("PK = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: pk},
			},
			ScanIndexForward:  aws.Bool(true),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}

		var page []dynamoEntry
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, page...)

		if resp.LastEvaluatedKey == nil {
			return items, nil
		}
		lastKey = resp.LastEvaluatedKey
	}
}

// DynamoDB caps BatchWriteItem at 25 requests per call.
const maxBatchWriteSize = 25

func writeBatchRequests(dynamoStore *DynamoCanvasStore, ctx context.Context, writeRequests []types.WriteRequest) error {
	for len(writeRequests) > 0 {
		batch := writeRequests
		if len(batch) > maxBatchWriteSize {
			batch = batch[:maxBatchWriteSize]
		}
		writeRequests = writeRequests[len(batch):]

		resp, err := dynamoStore.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				dynamoStore.tableName: batch,
			},
		})
		if err != nil {
			return fmt.Errorf("batch write failed: %w", err)
		}

		// Retry anything DynamoDB throttled out of the batch.
		if unprocessed, ok := resp.UnprocessedItems[dynamoStore.tableName]; ok && len(unprocessed) > 0 {
			writeRequests = append(unprocessed, writeRequests...)
		}
	}

	return nil
}
