package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/kvsession/internal/logging"
	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	"github.com/aretw0/kvsession/pkg/serializer"
)

// Store implements ports.SessionStore over any ports.KV.
// All fields are fixed at construction; a Store is safe for concurrent use
// as long as the KV is.
type Store struct {
	kv         ports.KV
	prefix     string
	serializer ports.Serializer
	ttl        time.Duration
	logger     *slog.Logger
}

var _ ports.SessionStore = (*Store)(nil)

// New creates a Store on top of an already adapted client.
func New(kv ports.KV, opts ...Option) *Store {
	s := &Store{
		kv:         kv,
		prefix:     DefaultPrefix,
		serializer: serializer.JSON{},
		ttl:        DefaultTTL,
		logger:     logging.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Prefix returns the configured key prefix.
func (s *Store) Prefix() string {
	return s.prefix
}

// TTL returns the default expiry substituted for Infinity.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// effectiveTTL applies the unbounded-expiry policy.
func (s *Store) effectiveTTL(ttl time.Duration) time.Duration {
	if ttl == Infinity || ttl <= 0 {
		return s.ttl
	}
	return ttl
}

// Get returns the record for id, or (nil, nil) when there is none.
// A value that cannot be decoded yields an error wrapping domain.ErrCorruptRecord.
func (s *Store) Get(ctx context.Context, id string) (*domain.Record, error) {
	val, found, err := s.kv.Read(ctx, s.key(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	// An empty value is treated like a missing key.
	if !found || val == "" {
		return nil, nil
	}

	record, err := s.serializer.Parse(ctx, val)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptRecord, err)
	}
	return record, nil
}

// Set encodes record and writes it with its expiry in one command,
// replacing any previous value and TTL.
func (s *Store) Set(ctx context.Context, id string, record *domain.Record, ttl time.Duration) error {
	serialized, err := s.serializer.Stringify(record)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.kv.WriteWithExpiry(ctx, s.key(id), serialized, s.effectiveTTL(ttl)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Destroy deletes the record. A missing record is not an error.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, s.key(id)); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Touch resets the expiry of an existing record. If there is no record
// (never written, destroyed or already expired) nothing happens.
func (s *Store) Touch(ctx context.Context, id string, ttl time.Duration) error {
	refreshed, err := s.kv.RefreshExpiry(ctx, s.key(id), s.effectiveTTL(ttl))
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if !refreshed {
		s.logger.Debug("Touch on missing session ignored", "session_id", id)
	}
	return nil
}
