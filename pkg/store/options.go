package store

import (
	"log/slog"
	"time"

	"github.com/aretw0/kvsession/pkg/ports"
)

const (
	// DefaultPrefix is prepended to every session identifier.
	DefaultPrefix = "sess:"

	// DefaultTTL replaces Infinity on writes and refreshes.
	DefaultTTL = 24 * time.Hour
)

// Infinity requests a session without expiry. See the package documentation.
const Infinity = ports.Infinity

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix. An empty prefix keeps the default.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithSerializer sets the record encoding. A nil serializer keeps JSON.
func WithSerializer(serializer ports.Serializer) Option {
	return func(s *Store) {
		if serializer != nil {
			s.serializer = serializer
		}
	}
}

// WithTTL sets the expiry used when a caller asks for Infinity.
// Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger configures a logger for absorbed outcomes (e.g. touching a missing session).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
