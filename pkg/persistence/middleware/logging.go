package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.SessionStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every operation: Debug on success, Warn on failure.
// Records are never logged, only identifiers.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "op", op, "session_id", id, "elapsed", time.Since(start))
	if err != nil {
		m.logger.WarnContext(ctx, "Session store operation failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "Session store operation", attrs...)
}

func (m *loggingMiddleware) Get(ctx context.Context, id string) (*domain.Record, error) {
	start := time.Now()
	rec, err := m.next.Get(ctx, id)
	m.log(ctx, opGet, id, start, err, "found", rec != nil)
	return rec, err
}

func (m *loggingMiddleware) Set(ctx context.Context, id string, record *domain.Record, ttl time.Duration) error {
	start := time.Now()
	err := m.next.Set(ctx, id, record, ttl)
	m.log(ctx, opSet, id, start, err, "ttl", ttl)
	return err
}

func (m *loggingMiddleware) Destroy(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Destroy(ctx, id)
	m.log(ctx, opDestroy, id, start, err)
	return err
}

func (m *loggingMiddleware) Touch(ctx context.Context, id string, ttl time.Duration) error {
	start := time.Now()
	err := m.next.Touch(ctx, id, ttl)
	m.log(ctx, opTouch, id, start, err, "ttl", ttl)
	return err
}
