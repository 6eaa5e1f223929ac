package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// KV implements ports.KV on top of a go-redis v9 client.
// Any backend.Cmdable works: *Client, *ClusterClient, *Ring.
type KV struct {
	client backend.Cmdable
	closer func() error
}

var _ ports.KV = (*KV)(nil)

// New dials a single Redis node and returns a KV that owns the connection.
func New(address, password string, db int) *KV {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	return &KV{
		client: rdb,
		closer: rdb.Close,
	}
}

// NewFromClient wraps an existing client. The caller keeps ownership; Close is a no-op.
func NewFromClient(client backend.Cmdable) *KV {
	return &KV{client: client}
}

// WriteWithExpiry issues SET key value PX ttl.
func (k *KV) WriteWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTTL, ttl)
	}

	if err := k.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write to redis: %w", err)
	}
	return nil
}

// Read issues GET key.
func (k *KV) Read(ctx context.Context, key string) (string, bool, error) {
	val, err := k.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, true, nil
}

// Delete issues DEL key.
func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// RefreshExpiry issues PEXPIRE key ttl. Redis answers 0 for a missing key.
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

// Close releases the connection if this KV created it.
func (k *KV) Close() error {
	if k.closer == nil {
		return nil
	}
	return k.closer()
}
