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

// SessionRepository stores the in-progress checkout for an owner. Records are
// replaced wholesale on every change.
type SessionRepository interface {
	GetSession(ctx context.Context, ownerKey string) (*models.CheckoutRecord, error)
	SaveSession(ctx context.Context, rec *models.CheckoutRecord) error
	DeleteSession(ctx context.Context, ownerKey string) error
}

type RedisSessionRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisSessionRepository(client redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

func sessionKey(ownerKey string) string {
	return "checkout:session:" + ownerKey
}

// GetSession returns nil, nil when no checkout is in progress.
func (r *RedisSessionRepository) GetSession(ctx context.Context, ownerKey string) (*models.CheckoutRecord, error) {
	data, err := r.client.Get(ctx, sessionKey(ownerKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get checkout session %s: %w", ownerKey, err)
	}

	var rec models.CheckoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode checkout session %s: %w", ownerKey, err)
	}
	return &rec, nil
}

func (r *RedisSessionRepository) SaveSession(ctx context.Context, rec *models.CheckoutRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode checkout session %s: %w", rec.OwnerID, err)
	}
	if err := r.client.Set(ctx, sessionKey(rec.OwnerID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save checkout session %s: %w", rec.OwnerID, err)
	}
	return nil
}

func (r *RedisSessionRepository) DeleteSession(ctx context.Context, ownerKey string) error {
	if err := r.client.Del(ctx, sessionKey(ownerKey)).Err(); err != nil {
		return fmt.Errorf("delete checkout session %s: %w", ownerKey, err)
	}
	return nil
}
