package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/corexathletics/storefront/services/account-service/models"
)

const (
	wishlistPartitionKey = "user_id"
	wishlistSortKey      = "product_id"
)

// DynamoAPI is the subset of the DynamoDB client the wishlist store uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoWishlistRepository keeps the wishlist in a table keyed by
// user_id (partition) and product_id (sort).
type DynamoWishlistRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoWishlistRepository(client DynamoAPI, table string) *DynamoWishlistRepository {
	return &DynamoWishlistRepository{client: client, table: table}
}

// WishlistKeys returns the partition and sort key attribute names.
func WishlistKeys() (partition, sortKey string) {
	return wishlistPartitionKey, wishlistSortKey
}

type ddbWishlistItem struct {
	UserID    string `dynamodbav:"user_id"`
	ProductID string `dynamodbav:"product_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

func (d *DynamoWishlistRepository) key(userID, productID string) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		wishlistPartitionKey: userID,
		wishlistSortKey:      productID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	return key, nil
}

func (d *DynamoWishlistRepository) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	uid, err := attributevalue.Marshal(userID)
	if err != nil {
		return nil, fmt.Errorf("marshal user id: %w", err)
	}
	input := &dynamodb.QueryInput{
		TableName:                 &d.table,
		KeyConditionExpression:    aws.String("#u = :u"),
		ExpressionAttributeNames:  map[string]string{"#u": wishlistPartitionKey},
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": uid},
	}

	var items []models.WishlistItem
	paginator := dynamodb.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb Query failed: %w", err)
		}
		for _, it := range page.Items {
			var di ddbWishlistItem
			if err := attributevalue.UnmarshalMap(it, &di); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			created, _ := time.Parse(time.RFC3339Nano, di.CreatedAt)
			items = append(items, models.WishlistItem{UserID: di.UserID, ProductID: di.ProductID, CreatedAt: created})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (d *DynamoWishlistRepository) Add(ctx context.Context, item models.WishlistItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	av, err := attributevalue.MarshalMap(ddbWishlistItem{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		CreatedAt: item.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	// Keep the original created_at when the pair already exists.
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                &d.table,
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#p)"),
		ExpressionAttributeNames: map[string]string{"#p": wishlistSortKey},
	})
	var condFailed *types.ConditionalCheckFailedException
	if err != nil && !errors.As(err, &condFailed) {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func (d *DynamoWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	key, err := d.key(userID, productID)
	if err != nil {
		return err
	}
	if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &d.table, Key: key}); err != nil {
		return fmt.Errorf("dynamodb DeleteItem failed: %w", err)
	}
	return nil
}
