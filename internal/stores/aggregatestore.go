package stores

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ReviewerKeyAttr is the partition key shared by both aggregate tables.
const ReviewerKeyAttr = "reviewerID"

// AggregateStore holds derived rows the pipeline writes but never reads back:
// per-reviewer counters and per-record summary rows. Increments must be atomic
// adds so concurrent invocations for the same reviewer cannot lose updates;
// upserts are full replace-by-key and therefore safe to redeliver.
type AggregateStore interface {
	IncrementCounter(ctx context.Context, table, key, field string, delta int) error
	UpsertRow(ctx context.Context, table string, fields map[string]any) error
}

type DynamoDBAggregateStore struct {
	client *dynamodb.Client
}

func NewDynamoDBAggregateStore(client *dynamodb.Client) *DynamoDBAggregateStore {
	return &DynamoDBAggregateStore{client: client}
}

func (s *DynamoDBAggregateStore) IncrementCounter(ctx context.Context, table, key, field string, delta int) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			ReviewerKeyAttr: &types.AttributeValueMemberS{Value: key},
		},
		UpdateExpression: aws.String("ADD #f :inc"),
		ExpressionAttributeNames: map[string]string{
			"#f": field,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inc": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
		},
	})
	if err != nil {
		return fmt.Errorf("[AggregateStore] failed to increment %s.%s for %q: %w", table, field, key, err)
	}
	return nil
}

func (s *DynamoDBAggregateStore) UpsertRow(ctx context.Context, table string, fields map[string]any) error {
	item, err := attributevalue.MarshalMap(fields)
	if err != nil {
		return fmt.Errorf("[AggregateStore] failed to marshal row for %s: %w", table, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[AggregateStore] failed to upsert row into %s: %w", table, err)
	}
	return nil
}
