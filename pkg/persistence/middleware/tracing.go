package middleware

import (
	"context"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/aretw0/kvsession"

type tracingMiddleware struct {
	next   ports.SessionStore
	tracer trace.Tracer
}

// NewTracingMiddleware starts one span per store operation.
// A nil provider falls back to the global one.
func NewTracingMiddleware(tp trace.TracerProvider) Middleware {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(instrumentationName)

	return func(next ports.SessionStore) ports.SessionStore {
		return &tracingMiddleware{next: next, tracer: tracer}
	}
}

func (m *tracingMiddleware) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := m.tracer.Start(ctx, "session."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("session.op", op))
	span.SetAttributes(attrs...)
	return ctx, span
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (m *tracingMiddleware) Get(ctx context.Context, id string) (*domain.Record, error) {
	ctx, span := m.start(ctx, opGet)
	rec, err := m.next.Get(ctx, id)
	span.SetAttributes(attribute.Bool("session.found", rec != nil))
	finish(span, err)
	return rec, err
}

func (m *tracingMiddleware) Set(ctx context.Context, id string, record *domain.Record, ttl time.Duration) error {
	ctx, span := m.start(ctx, opSet, attribute.Int64("session.ttl_ms", ttl.Milliseconds()))
	err := m.next.Set(ctx, id, record, ttl)
	finish(span, err)
	return err
}

func (m *tracingMiddleware) Destroy(ctx context.Context, id string) error {
	ctx, span := m.start(ctx, opDestroy)
	err := m.next.Destroy(ctx, id)
	finish(span, err)
	return err
}

func (m *tracingMiddleware) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ctx, span := m.start(ctx, opTouch, attribute.Int64("session.ttl_ms", ttl.Milliseconds()))
	err := m.next.Touch(ctx, id, ttl)
	finish(span, err)
	return err
}
