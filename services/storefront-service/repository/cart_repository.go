package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/corexathletics/storefront/services/storefront-service/models"
	"github.com/redis/go-redis/v9"
)

// CartRepository stores one cart per owner key.
type CartRepository interface {
	GetCart(ctx context.Context, ownerKey string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, ownerKey string) error
}

type RedisCartRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCartRepository(client redis.Cmdable, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

func cartKey(ownerKey string) string {
	return "cart:" + ownerKey
}

// GetCart returns nil, nil when the owner has no cart.
func (r *RedisCartRepository) GetCart(ctx context.Context, ownerKey string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(ownerKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart %s: %w", ownerKey, err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", ownerKey, err)
	}
	return &cart, nil
}

// SaveCart writes the cart and refreshes its TTL. An empty cart is deleted.
func (r *RedisCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	if len(cart.Items) == 0 {
		return r.DeleteCart(ctx, cart.OwnerID)
	}
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cart.OwnerID, err)
	}
	if err := r.client.Set(ctx, cartKey(cart.OwnerID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", cart.OwnerID, err)
	}
	return nil
}

func (r *RedisCartRepository) DeleteCart(ctx context.Context, ownerKey string) error {
	if err := r.client.Del(ctx, cartKey(ownerKey)).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", ownerKey, err)
	}
	return nil
}
