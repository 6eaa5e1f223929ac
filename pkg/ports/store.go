package ports

import (
	"context"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
)

// SessionStore is the contract a session manager consumes.
type SessionStore interface {
	// Get returns the record stored for id, or (nil, nil) if there is none.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// Set writes the record with the given time to live, replacing any previous value.
	Set(ctx context.Context, id string, record *domain.Record, ttl time.Duration) error

	// Destroy removes the record. Removing a missing record is not an error.
	Destroy(ctx context.Context, id string) error

	// Touch resets the time to live without changing the record.
	// Touching a missing record is not an error and does not create it.
	Touch(ctx context.Context, id string, ttl time.Duration) error
}

// Infinity is the "never expire" TTL. Stores that cannot keep a key forever
// replace it with their configured default TTL.
const Infinity = time.Duration(1<<63 - 1)
