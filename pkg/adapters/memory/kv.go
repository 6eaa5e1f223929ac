package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	"github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired items are purged from memory.
// Reads never return expired items regardless of this interval.
const DefaultCleanupInterval = time.Minute

// KV implements ports.KV in memory on top of go-cache.
// Safe for concurrent use.
type KV struct {
	cache *cache.Cache
	// go-cache has no "expire only" call, so a refresh is a get+set.
	// mu keeps writes from interleaving with that pair.
	mu sync.Mutex
}

var _ ports.KV = (*KV)(nil)

// NewKV creates an empty in-memory KV.
func NewKV() *KV {
	return NewFromCache(cache.New(cache.NoExpiration, DefaultCleanupInterval))
}

// NewFromCache wraps an existing cache.
func NewFromCache(c *cache.Cache) *KV {
	return &KV{cache: c}
}

func (k *KV) WriteWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTTL, ttl)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.cache.Set(key, value, ttl)
	return nil
}

func (k *KV) Read(ctx context.Context, key string) (string, bool, error) {
	v, ok := k.cache.Get(key)
	if !ok {
		return "", false, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("unexpected value type %T under key %q", v, key)
	}
	return s, true, nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cache.Delete(key)
	return nil
}

func (k *KV) RefreshExpiry(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidTTL, ttl)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	v, ok := k.cache.Get(key)
	if !ok {
		return false, nil
	}
	k.cache.Set(key, v, ttl)
	return true, nil
}
