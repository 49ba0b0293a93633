package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lead-capture-api/internal/domain"
)

// AgreementRepo provides typed DynamoDB operations for the agreements table.
// The table is keyed by normalized email, so the conditional put below is
// the storage-layer uniqueness constraint the workflow depends on.
type AgreementRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAgreementRepo(client *dynamodb.Client, tableName string) *AgreementRepo {
	return &AgreementRepo{client: client, tableName: tableName}
}

// Insert writes the record only if no record exists for the email yet.
// A concurrent writer losing the race gets domain.ErrConflict, which the
// caller treats as the already-satisfied end state.
func (r *AgreementRepo) Insert(ctx context.Context, a *domain.AgreementRecord) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal agreement: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return fmt.Errorf("agreement exists for email: %w", domain.ErrConflict)
		}
		return fmt.Errorf("put agreement: %w", err)
	}
	return nil
}

// GetByEmail returns the agreement for the given normalized email, or
// domain.ErrNotFound.
func (r *AgreementRepo) GetByEmail(ctx context.Context, email string) (*domain.AgreementRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, fmt.Errorf("get agreement: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("agreement not found: %w", domain.ErrNotFound)
	}
	var a domain.AgreementRecord
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
