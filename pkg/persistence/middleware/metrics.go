package middleware

import (
	"context"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for kvsession_operations_total.
const (
	OutcomeOK     = "ok"
	OutcomeAbsent = "absent"
	OutcomeError  = "error"
)

// Metrics holds the collectors used by the metrics middleware.
type Metrics struct {
	// Operations counts store calls, labeled by op and outcome.
	Operations *prometheus.CounterVec

	// Duration records the latency of store calls in seconds, labeled by op.
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg (if not nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kvsession_operations_total",
			Help: "Total number of session store operations",
		}, []string{"op", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kvsession_operation_duration_seconds",
			Help:    "Session store operation latency in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"op"}),
	}

	if reg != nil {
		reg.MustRegister(m.Operations, m.Duration)
	}
	return m
}

type metricsMiddleware struct {
	next    ports.SessionStore
	metrics *Metrics
}

// NewMetricsMiddleware records operation counts and latency into m.
func NewMetricsMiddleware(m *Metrics) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &metricsMiddleware{next: next, metrics: m}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, outcome string) {
	m.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.metrics.Operations.WithLabelValues(op, outcome).Inc()
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

func (m *metricsMiddleware) Get(ctx context.Context, id string) (*domain.Record, error) {
	start := time.Now()
	rec, err := m.next.Get(ctx, id)

	outcome := outcomeOf(err)
	if err == nil && rec == nil {
		outcome = OutcomeAbsent
	}
	m.observe(opGet, start, outcome)
	return rec, err
}

func (m *metricsMiddleware) Set(ctx context.Context, id string, record *domain.Record, ttl time.Duration) error {
	start := time.Now()
	err := m.next.Set(ctx, id, record, ttl)
	m.observe(opSet, start, outcomeOf(err))
	return err
}

func (m *metricsMiddleware) Destroy(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Destroy(ctx, id)
	m.observe(opDestroy, start, outcomeOf(err))
	return err
}

func (m *metricsMiddleware) Touch(ctx context.Context, id string, ttl time.Duration) error {
	start := time.Now()
	err := m.next.Touch(ctx, id, ttl)
	m.observe(opTouch, start, outcomeOf(err))
	return err
}
