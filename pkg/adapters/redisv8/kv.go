// Package redisv8 adapts go-redis v8 clients to ports.KV.
//
// It exists for hosts still pinned to github.com/go-redis/redis/v8. Writes go
// through SetArgs so the expiry travels as an option object on the SET itself.
package redisv8

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	"github.com/go-redis/redis/v8"
)

// KV implements ports.KV on top of a go-redis v8 client.
type KV struct {
	client redis.Cmdable
}

var _ ports.KV = (*KV)(nil)

// NewFromClient wraps an existing v8 client. The caller keeps ownership.
func NewFromClient(client redis.Cmdable) *KV {
	return &KV{client: client}
}

func (k *KV) WriteWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTTL, ttl)
	}

	err := k.client.SetArgs(ctx, key, value, redis.SetArgs{TTL: ttl}).Err()
	if err != nil {
		return fmt.Errorf("failed to write to redis: %w", err)
	}
	return nil
}

func (k *KV) Read(ctx context.Context, key string) (string, bool, error) {
	val, err := k.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, true, nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (k *KV) RefreshExpiry(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidTTL, ttl)
	}

	ok, err := k.client.PExpire(ctx, key, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to refresh expiry in redis: %w", err)
	}
	return ok, nil
}
