package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"top250/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const (
	userKeyPrefix  = "user#"
	emailKeyPrefix = "email#"
)

// UserRepository keeps two items per account in one table: the record under
// "user#<username>" and a marker under "email#<email>" that names the owner.
// Both are written in one transaction, which makes each key unique.
type UserRepository struct {
	client *dynamodb.Client
	table  string
}

type userItem struct {
	PK           string    `dynamodbav:"pk"`
	ID           string    `dynamodbav:"id"`
	Username     string    `dynamodbav:"username"`
	Email        string    `dynamodbav:"email"`
	PasswordHash string    `dynamodbav:"password_hash"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
	UpdatedAt    time.Time `dynamodbav:"updated_at"`
}

type emailItem struct {
	PK       string `dynamodbav:"pk"`
	Username string `dynamodbav:"username"`
}

func NewUserRepository(client *dynamodb.Client, table string) *UserRepository {
	return &UserRepository{
		client: client,
		table:  table,
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	item := userItem{
		PK:           userKeyPrefix + u.Username,
		ID:           uuid.NewString(),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	userAV, err := attributevalue.MarshalMap(item)
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: marshal user: %w", err)
	}
	emailAV, err := attributevalue.MarshalMap(emailItem{PK: emailKeyPrefix + u.Email, Username: u.Username})
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: marshal email marker: %w", err)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           &r.table,
				Item:                userAV,
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			}},
			{Put: &types.Put{
				TableName:           &r.table,
				Item:                emailAV,
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			}},
		},
	})
	if err != nil {
		if isDuplicate(err) {
			return user.User{}, user.ErrDuplicateUser
		}
		return user.User{}, fmt.Errorf("dynamodb: put user: %w", err)
	}

	return toDomainUser(item), nil
}

// GetByLogin resolves the login as a username, then through the email marker.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	u, err := r.getByUsername(ctx, login)
	if !errors.Is(err, user.ErrUserNotFound) {
		return u, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            pk(emailKeyPrefix + login),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: get email marker: %w", err)
	}
	if len(out.Item) == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	var marker emailItem
	if err := attributevalue.UnmarshalMap(out.Item, &marker); err != nil {
		return user.User{}, fmt.Errorf("dynamodb: unmarshal email marker: %w", err)
	}
	return r.getByUsername(ctx, marker.Username)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string, updatedAt time.Time) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	at, err := attributevalue.Marshal(updatedAt)
	if err != nil {
		return fmt.Errorf("dynamodb: marshal updated_at: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &r.table,
		Key:                 pk(userKeyPrefix + username),
		UpdateExpression:    aws.String("SET password_hash = :hash, updated_at = :at"),
		ConditionExpression: aws.String("attribute_exists(pk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash": &types.AttributeValueMemberS{Value: passwordHash},
			":at":   at,
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("dynamodb: update password: %w", err)
	}
	return nil
}

func (r *UserRepository) getByUsername(ctx context.Context, username string) (user.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            pk(userKeyPrefix + username),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: get user: %w", err)
	}
	if len(out.Item) == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return user.User{}, fmt.Errorf("dynamodb: unmarshal user: %w", err)
	}
	return toDomainUser(item), nil
}

func pk(value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: value},
	}
}

func isDuplicate(err error) bool {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return false
	}
	for _, reason := range canceled.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func toDomainUser(item userItem) user.User {
	return user.User{
		ID:           item.ID,
		Username:     item.Username,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}
