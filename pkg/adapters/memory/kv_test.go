package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kvsession/pkg/adapters/memory"
	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_Contract(t *testing.T) {
	ports.RunKVContract(t, memory.NewKV(), time.Sleep)
}

func TestMemoryKV_ForeignValueType(t *testing.T) {
	c := cache.New(cache.NoExpiration, time.Minute)
	c.Set("sess:n", 42, time.Minute)

	_, _, err := memory.NewFromCache(c).Read(context.Background(), "sess:n")
	assert.Error(t, err)
}

func TestMemoryKV_RejectsNonPositiveTTL(t *testing.T) {
	kv := memory.NewKV()
	ctx := context.Background()

	assert.ErrorIs(t, kv.WriteWithExpiry(ctx, "k", "v", 0), domain.ErrInvalidTTL)

	require.NoError(t, kv.WriteWithExpiry(ctx, "k", "v", time.Minute))
	_, err := kv.RefreshExpiry(ctx, "k", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidTTL)
}
