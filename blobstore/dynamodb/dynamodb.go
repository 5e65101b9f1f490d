// Package dynamodb provides a blobstore.Store backed by a DynamoDB table.
//
// Each blob is one item: a string partition key ("blob_key") and a binary
// attribute ("data"). Suited to the cache engine's single-snapshot usage;
// note DynamoDB's 400KB item limit bounds snapshot size.
package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/daryllundy/gitlab-dashwatch-sub001/blobstore"
)

const (
	attrKey  = "blob_key"
	attrData = "data"
)

// Client is the subset of the DynamoDB API the store uses.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store implements blobstore.Store on a DynamoDB table.
type Store struct {
	client Client
	table  string
}

// New creates a DynamoDB store over the given table. The table must have a
// string partition key named "blob_key".
func New(client Client, table string) *Store {
	return &Store{client: client, table: table}
}

// NewFromDefaultConfig creates a DynamoDB store using the ambient AWS
// configuration.
func NewFromDefaultConfig(ctx context.Context, table string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return New(dynamodb.NewFromConfig(cfg), table), nil
}

// Get returns the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			attrKey: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Item == nil {
		return nil, blobstore.ErrNotFound
	}
	data, ok := resp.Item[attrData].(*types.AttributeValueMemberB)
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return data.Value, nil
}

// Set stores the blob under key.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			attrKey:  &types.AttributeValueMemberS{Value: key},
			attrData: &types.AttributeValueMemberB{Value: data},
		},
	})
	return err
}

// Remove deletes the blob under key.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			attrKey: &types.AttributeValueMemberS{Value: key},
		},
	})
	return err
}

// Close implements blobstore.Store.
func (s *Store) Close() error { return nil }
