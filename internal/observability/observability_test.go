package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climatquartier/scenario-service/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})

	assert.Same(t, logger, slog.Default())
	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
}

func TestNewLogger_DebugLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "DEBUG", LogFormat: "text"})
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestMetrics_RegisterOnFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)

	m.RequestsConsumed.Add(3)
	m.SimulationErrors.WithLabelValues("parse").Inc()
	m.BaselineLookups.WithLabelValues("fallback").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	counters := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				counters[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 3.0, counters["climatquartier_requests_consumed_total"])
	assert.Equal(t, 1.0, counters["climatquartier_simulation_errors_total"])
	assert.Equal(t, 1.0, counters["climatquartier_baseline_lookups_total"])
}

func TestNewMetricsForTesting_IndependentInstances(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(a.PipelineRunning))
	assert.Error(t, reg.Register(b.PipelineRunning), "same descriptor cannot be registered twice")
}
