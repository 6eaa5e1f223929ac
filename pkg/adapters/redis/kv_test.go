package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/kvsession/internal/testutils"
	"github.com/aretw0/kvsession/pkg/adapters/redis"
	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *redis.KV) {
	t.Helper()

	mr, client := testutils.SetupRedis(t)
	return mr, redis.NewFromClient(client)
}

func TestRedisKV_Contract(t *testing.T) {
	mr, kv := setup(t)
	ports.RunKVContract(t, kv, mr.FastForward)
}

func TestRedisKV_WriteSetsMillisecondTTL(t *testing.T) {
	mr, kv := setup(t)
	ctx := context.Background()

	require.NoError(t, kv.WriteWithExpiry(ctx, "sess:a", "v", 1500*time.Millisecond))

	assert.Equal(t, 1500*time.Millisecond, mr.TTL("sess:a"))
}

func TestRedisKV_RefreshKeepsValue(t *testing.T) {
	mr, kv := setup(t)
	ctx := context.Background()

	require.NoError(t, kv.WriteWithExpiry(ctx, "sess:a", "payload", time.Second))

	ok, err := kv.RefreshExpiry(ctx, "sess:a", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	val, err := mr.Get("sess:a")
	require.NoError(t, err)
	assert.Equal(t, "payload", val)
	assert.Equal(t, 5*time.Second, mr.TTL("sess:a"))
}

func TestRedisKV_RejectsNonPositiveTTL(t *testing.T) {
	mr, kv := setup(t)
	ctx := context.Background()

	err := kv.WriteWithExpiry(ctx, "sess:a", "v", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTTL)
	assert.False(t, mr.Exists("sess:a"), "nothing should be written without an expiry")

	_, err = kv.RefreshExpiry(ctx, "sess:a", -time.Second)
	assert.ErrorIs(t, err, domain.ErrInvalidTTL)
}

func TestRedisKV_ConnectivityError(t *testing.T) {
	mr, kv := setup(t)
	mr.Close()

	ctx := context.Background()

	_, _, err := kv.Read(ctx, "sess:a")
	assert.Error(t, err)

	err = kv.WriteWithExpiry(ctx, "sess:a", "v", time.Second)
	assert.Error(t, err)

	_, err = kv.RefreshExpiry(ctx, "sess:a", time.Second)
	assert.Error(t, err, "transport errors must not be absorbed like a missing key")
}

func TestRedisKV_CloseOwnership(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	owned := redis.New(mr.Addr(), "", 0)
	assert.NoError(t, owned.Close())

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	borrowed := redis.NewFromClient(client)
	assert.NoError(t, borrowed.Close())
	assert.NoError(t, client.Ping(context.Background()).Err(), "borrowed client must stay open")
}
