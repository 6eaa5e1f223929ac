package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Advance moves the backing store's clock forward by d.
// Adapters whose backend supports it (miniredis.FastForward) should use that,
// others can simply sleep.
type Advance func(d time.Duration)

func sampleRecord() *domain.Record {
	return &domain.Record{
		Cookie: domain.CookieOptions{
			Path:     "/",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "lax",
		},
		Data: map[string]any{"foo": "foo"},
	}
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore, advance Advance) {
	ctx := context.Background()

	t.Run("Get Missing", func(t *testing.T) {
		rec, err := store.Get(ctx, "missing-"+uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("Set and Get", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Set(ctx, id, sampleRecord(), Infinity))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, sampleRecord(), rec)
	})

	t.Run("Empty Data", func(t *testing.T) {
		id := uuid.NewString()
		want := &domain.Record{Cookie: sampleRecord().Cookie, Data: map[string]any{}}
		require.NoError(t, store.Set(ctx, id, want, Infinity))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, rec)
	})

	t.Run("Overwrite", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Set(ctx, id, sampleRecord(), Infinity))

		next := sampleRecord()
		next.Data = map[string]any{"bar": "bar"}
		require.NoError(t, store.Set(ctx, id, next, Infinity))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, next, rec)
	})

	t.Run("Finite TTL Expires", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Set(ctx, id, sampleRecord(), 100*time.Millisecond))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, rec, "record should be readable before its TTL elapses")

		advance(150 * time.Millisecond)

		rec, err = store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("Destroy", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Set(ctx, id, sampleRecord(), 100*time.Millisecond))
		require.NoError(t, store.Destroy(ctx, id))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("Destroy Missing", func(t *testing.T) {
		assert.NoError(t, store.Destroy(ctx, "missing-"+uuid.NewString()))
	})

	t.Run("Touch Extends TTL", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Set(ctx, id, sampleRecord(), 100*time.Millisecond))
		require.NoError(t, store.Touch(ctx, id, 500*time.Millisecond))

		advance(250 * time.Millisecond)

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, sampleRecord(), rec)
	})

	t.Run("Touch Missing", func(t *testing.T) {
		id := "missing-" + uuid.NewString()
		require.NoError(t, store.Touch(ctx, id, time.Second))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec, "Touch must not create the record")
	})

	t.Run("Destroy Expired", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Set(ctx, id, sampleRecord(), 100*time.Millisecond))

		advance(150 * time.Millisecond)

		require.NoError(t, store.Destroy(ctx, id))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("Touch Expired", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Set(ctx, id, sampleRecord(), 100*time.Millisecond))

		advance(150 * time.Millisecond)

		require.NoError(t, store.Touch(ctx, id, time.Minute))

		rec, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec, "Touch must not bring an expired record back")
	})
}

// RunKVContract verifies the primitive semantics every KV adapter must provide.
func RunKVContract(t *testing.T, kv KV, advance Advance) {
	ctx := context.Background()

	t.Run("Read Missing", func(t *testing.T) {
		_, found, err := kv.Read(ctx, "missing-"+uuid.NewString())
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Write and Read", func(t *testing.T) {
		key := uuid.NewString()
		require.NoError(t, kv.WriteWithExpiry(ctx, key, `{"a":1}`, time.Minute))

		val, found, err := kv.Read(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"a":1}`, val)
	})

	t.Run("Write Expires", func(t *testing.T) {
		key := uuid.NewString()
		require.NoError(t, kv.WriteWithExpiry(ctx, key, "v", 100*time.Millisecond))

		advance(150 * time.Millisecond)

		_, found, err := kv.Read(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Refresh Existing", func(t *testing.T) {
		key := uuid.NewString()
		require.NoError(t, kv.WriteWithExpiry(ctx, key, "v", 100*time.Millisecond))

		refreshed, err := kv.RefreshExpiry(ctx, key, 500*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, refreshed)

		advance(250 * time.Millisecond)

		val, found, err := kv.Read(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v", val)
	})

	t.Run("Refresh Missing", func(t *testing.T) {
		key := "missing-" + uuid.NewString()
		refreshed, err := kv.RefreshExpiry(ctx, key, time.Second)
		require.NoError(t, err)
		assert.False(t, refreshed)

		_, found, err := kv.Read(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		key := uuid.NewString()
		require.NoError(t, kv.WriteWithExpiry(ctx, key, "v", time.Minute))
		require.NoError(t, kv.Delete(ctx, key))

		_, found, err := kv.Read(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)

		assert.NoError(t, kv.Delete(ctx, key), "deleting a missing key is not an error")
	})
}
