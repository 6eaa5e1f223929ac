package store

import (
	"fmt"

	"github.com/aretw0/kvsession/pkg/adapters/memory"
	"github.com/aretw0/kvsession/pkg/adapters/redis"
	"github.com/aretw0/kvsession/pkg/adapters/redisv8"
	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	redisv8client "github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
	backend "github.com/redis/go-redis/v9"
)

// NewFromClient picks the KV adapter matching the client's type and builds a Store on it.
//
// Supported clients:
//   - anything implementing ports.KV (used as is)
//   - go-redis v9 clients (redis.Cmdable: *Client, *ClusterClient, *Ring)
//   - go-redis v8 clients (redis.Cmdable)
//   - *cache.Cache from github.com/patrickmn/go-cache
func NewFromClient(client any, opts ...Option) (*Store, error) {
	kv, err := Adapt(client)
	if err != nil {
		return nil, err
	}
	return New(kv, opts...), nil
}

// Adapt returns the ports.KV for a supported client.
func Adapt(client any) (ports.KV, error) {
	switch c := client.(type) {
	case nil:
		return nil, domain.ErrNilClient
	case ports.KV:
		return c, nil
	case backend.Cmdable:
		return redis.NewFromClient(c), nil
	case redisv8client.Cmdable:
		return redisv8.NewFromClient(c), nil
	case *cache.Cache:
		return memory.NewFromCache(c), nil
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnsupportedClient, client)
	}
}
