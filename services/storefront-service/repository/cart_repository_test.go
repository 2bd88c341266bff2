package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCartRepositoryGetMissingCart(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCartRepository(client, time.Hour)

	mock.ExpectGet("cart:guest:abc").RedisNil()

	cart, err := repo.GetCart(context.Background(), "guest:abc")
	require.NoError(t, err)
	assert.Nil(t, cart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCartRepositoryGetCart(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCartRepository(client, time.Hour)

	stored := models.Cart{OwnerID: "user:1", Items: []models.CartItem{{ProductID: "xt-001", Size: "M", Color: "Black", Quantity: 2}}}
	data, err := json.Marshal(stored)
	require.NoError(t, err)
	mock.ExpectGet("cart:user:1").SetVal(string(data))

	cart, err := repo.GetCart(context.Background(), "user:1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCartRepositoryErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCartRepository(client, time.Hour)

	mock.ExpectGet("cart:user:1").SetErr(errors.New("connection refused"))
	_, err := repo.GetCart(context.Background(), "user:1")
	assert.ErrorContains(t, err, "connection refused")

	mock.ExpectGet("cart:user:2").SetVal("{not json")
	_, err = repo.GetCart(context.Background(), "user:2")
	assert.Error(t, err)
}

func TestRedisCartRepositorySaveEmptyCartDeletes(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCartRepository(client, time.Hour)

	mock.ExpectDel("cart:user:1").SetVal(1)

	require.NoError(t, repo.SaveCart(context.Background(), &models.Cart{OwnerID: "user:1"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepositoryMissingAndDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisSessionRepository(client, 30*time.Minute)

	mock.ExpectGet("checkout:session:guest:abc").RedisNil()
	mock.ExpectDel("checkout:session:guest:abc").SetVal(1)

	rec, err := repo.GetSession(context.Background(), "guest:abc")
	require.NoError(t, err)
	assert.Nil(t, rec)
	require.NoError(t, repo.DeleteSession(context.Background(), "guest:abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
