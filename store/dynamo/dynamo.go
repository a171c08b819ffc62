package dynamo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gofrs/uuid/v5"
)

// Single shared canvas: every entry lives under one partition and is
// keyed by a UUIDv7 sort key, so a plain query returns the log in
// chronological order.
const canvasPK = "CANVAS#default"

type dynamoEntry struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	Entry []byte `dynamodbav:"Entry"`
}

type DynamoCanvasStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoCanvasStore(ctx context.Context, devMode bool, dynamodbEndpoint string, tableName string) (*DynamoCanvasStore, error) {
	client, err := newDynamoDBClient(ctx, devMode, dynamodbEndpoint)
	if err != nil {
		return nil, err
	}

	tables, err := getTables(client, ctx)
	if err != nil {
		return nil, err
	}

	foundTable := false
	for _, table := range tables {
		if table == tableName {
			foundTable = true
			break
		}
	}
	if !foundTable {
		return nil, fmt.Errorf("given table name '%s' not found in dynamodb", tableName)
	}

	return &DynamoCanvasStore{client: client, tableName: tableName}, nil
}

func (dynamoStore *DynamoCanvasStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	items, err := queryPartition(dynamoStore, ctx, canvasPK)
	if err != nil {
		return nil, err
	}

	entries := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		entries = append(entries, json.RawMessage(item.Entry))
	}
	return entries, nil
}

func (dynamoStore *DynamoCanvasStore) Append(ctx context.Context, entry json.RawMessage) error {
	entryId, err := uuid.NewV7()
	if err != nil {
		return err
	}

	item := dynamoEntry{
		PK:    canvasPK,
		SK:    entryId.String(),
		Entry: []byte(entry),
	}

	avMap, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	_, err = dynamoStore.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &dynamoStore.tableName,
		Item:      avMap,
	})
	return err
}

func (dynamoStore *DynamoCanvasStore) Reset(ctx context.Context) error {
	items, err := queryPartition(dynamoStore, ctx, canvasPK)
	if err != nil {
		return err
	}

	writeRequests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: item.PK},
					"SK": &types.AttributeValueMemberS{Value: item.SK},
				},
			},
		})
	}

	return writeBatchRequests(dynamoStore, ctx, writeRequests)
}
