package middleware_test

import (
	"context"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// err, when set, is returned from every call.
type MockStore struct {
	data map[string]*domain.Record
	ttls map[string]time.Duration
	err  error
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Record),
		ttls: make(map[string]time.Duration),
	}
}

func (s *MockStore) Get(ctx context.Context, id string) (*domain.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}

func (s *MockStore) Set(ctx context.Context, id string, record *domain.Record, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.data[id] = record
	s.ttls[id] = ttl
	return nil
}

func (s *MockStore) Destroy(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.data, id)
	delete(s.ttls, id)
	return nil
}

func (s *MockStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; ok {
		s.ttls[id] = ttl
	}
	return nil
}

var _ ports.SessionStore = (*MockStore)(nil)
