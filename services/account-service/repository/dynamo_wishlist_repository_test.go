package repository_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/corexathletics/storefront/services/account-service/models"
	"github.com/corexathletics/storefront/services/account-service/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in memory keyed by user then product.
type fakeDynamo struct {
	items map[string]map[string]map[string]types.AttributeValue
	puts  int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]map[string]types.AttributeValue{}}
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts++
	u, p := str(in.Item["user_id"]), str(in.Item["product_id"])
	if f.items[u] == nil {
		f.items[u] = map[string]map[string]types.AttributeValue{}
	}
	if _, exists := f.items[u][p]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[u][p] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items[str(in.Key["user_id"])], str(in.Key["product_id"]))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items[str(in.ExpressionAttributeValues[":u"])] {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func TestDynamoWishlist_AddListRemove(t *testing.T) {
	ctx := context.Background()
	db := newFakeDynamo()
	repo := repository.NewDynamoWishlistRepository(db, "wishlists")

	require.NoError(t, repo.Add(ctx, models.WishlistItem{UserID: "u1", ProductID: "xt-001"}))
	require.NoError(t, repo.Add(ctx, models.WishlistItem{UserID: "u1", ProductID: "xt-001"}))
	require.NoError(t, repo.Add(ctx, models.WishlistItem{UserID: "u2", ProductID: "xj-004"}))
	assert.Equal(t, 3, db.puts)

	items, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "xt-001", items[0].ProductID)
	assert.False(t, items[0].CreatedAt.IsZero())

	require.NoError(t, repo.Remove(ctx, "u1", "xt-001"))
	items, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDynamoWishlist_ItemShape(t *testing.T) {
	db := newFakeDynamo()
	repo := repository.NewDynamoWishlistRepository(db, "wishlists")
	require.NoError(t, repo.Add(context.Background(), models.WishlistItem{UserID: "u1", ProductID: "cs-002"}))

	var stored struct {
		UserID    string `dynamodbav:"user_id"`
		ProductID string `dynamodbav:"product_id"`
		CreatedAt string `dynamodbav:"created_at"`
	}
	require.NoError(t, attributevalue.UnmarshalMap(db.items["u1"]["cs-002"], &stored))
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "cs-002", stored.ProductID)
	assert.NotEmpty(t, stored.CreatedAt)

	pk, sk := repository.WishlistKeys()
	assert.Equal(t, "user_id", pk)
	assert.Equal(t, "product_id", sk)
}
