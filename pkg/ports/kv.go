package ports

import (
	"context"
	"time"
)

// KV is the capability a backing key-value client must offer.
// One adapter exists per concrete client shape; see pkg/adapters.
type KV interface {
	// WriteWithExpiry stores value under key with the expiry attached in the same command.
	WriteWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error

	// Read returns the value for key. found is false when the key does not exist.
	Read(ctx context.Context, key string) (value string, found bool, err error)

	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error

	// RefreshExpiry sets a new expiry on an existing key without touching its value.
	// refreshed is false when the key did not exist.
	RefreshExpiry(ctx context.Context, key string, ttl time.Duration) (refreshed bool, err error)
}
