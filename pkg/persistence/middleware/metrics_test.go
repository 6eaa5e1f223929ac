package middleware_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/kvsession/pkg/domain"
	"github.com/aretw0/kvsession/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg)
	store := middleware.NewMetricsMiddleware(m)(NewMockStore())
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "a", domain.NewRecord(domain.CookieOptions{}), time.Minute))
	rec, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.NoError(t, store.Touch(ctx, "a", time.Minute))
	require.NoError(t, store.Destroy(ctx, "a"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("get", middleware.OutcomeAbsent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("get", middleware.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("set", middleware.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("touch", middleware.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("destroy", middleware.OutcomeOK)))
	assert.Equal(t, 4, testutil.CollectAndCount(m.Duration))
}

func TestMetricsMiddleware_Errors(t *testing.T) {
	m := middleware.NewMetrics(nil)
	boom := errors.New("boom")
	mock := NewMockStore()
	mock.err = boom
	store := middleware.NewMetricsMiddleware(m)(mock)

	_, err := store.Get(context.Background(), "a")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("get", middleware.OutcomeError)))
}
