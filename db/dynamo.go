package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/jsphweid/ctransposer/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// DynamoStore keeps reports in a table keyed by PK (song digest) and SK
// (shift in semitones).
type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamoStore(endpoint, region, table string) (*DynamoStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) SaveReport(ctx context.Context, r model.Report) error {
	item, err := dynamodbattribute.MarshalMap(r)
	if err != nil {
		return fmt.Errorf("could not marshal report: %w", err)
	}
	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (s *DynamoStore) GetReports(ctx context.Context, digest string) ([]model.Report, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pk": {S: aws.String(digest)},
		},
	}

	var res []model.Report
	for {
		out, err := s.client.QueryWithContext(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error from DynamoDB: %w", err)
		}
		var page []model.Report
		if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("could not unmarshal reports: %w", err)
		}
		res = append(res, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	if len(res) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Semitones < res[j].Semitones })
	return res, nil
}

func (s *DynamoStore) Close() error {
	return nil
}
