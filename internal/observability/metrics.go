package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "climatquartier"

// Metrics holds the Prometheus counters, histograms, and gauges for the scenario service.
type Metrics struct {
	RequestsConsumed   prometheus.Counter
	ResultsProduced    prometheus.Counter
	SimulationErrors   *prometheus.CounterVec // labels: reason={parse,unknown,baseline,other}
	PipelineRunning    prometheus.Gauge
	SimulationDuration *prometheus.HistogramVec // labels: origin={kafka,http}

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Baseline resolution metrics.
	BaselineLookups    *prometheus.CounterVec // labels: source={static,remote,fallback}
	TableStoreRequests *prometheus.CounterVec // labels: outcome={found,missing,error}
	TableStoreCache    *prometheus.CounterVec // labels: result={hit,miss}
	TableStoreDuration prometheus.Histogram
	TableStoreEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// NewDetachedMetrics creates unregistered Metrics for one-shot tools that
// never serve /metrics.
func NewDetachedMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_consumed_total",
			Help:      "Total scenario requests read from the source topic.",
		}),
		ResultsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_produced_total",
			Help:      "Total simulation results written to the sink topic.",
		}),
		SimulationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_errors_total",
			Help:      "Scenario requests that could not be simulated, by reason.",
		}, []string{"reason"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Time to resolve a baseline and compose one scenario.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"origin"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-simulate-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		BaselineLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "baseline_lookups_total",
			Help:      "Baseline resolutions by provenance.",
		}, []string{"source"}),
		TableStoreRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tablestore_requests_total",
			Help:      "Table store requests by outcome.",
		}, []string{"outcome"}),
		TableStoreCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tablestore_cache_total",
			Help:      "Table store cache lookups by result.",
		}, []string{"result"}),
		TableStoreDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tablestore_request_duration_seconds",
			Help:      "Table store request duration in seconds, retries included.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		TableStoreEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tablestore_enabled",
			Help:      "1 when remote baselines are enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RequestsConsumed,
		m.ResultsProduced,
		m.SimulationErrors,
		m.PipelineRunning,
		m.SimulationDuration,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.BaselineLookups,
		m.TableStoreRequests,
		m.TableStoreCache,
		m.TableStoreDuration,
		m.TableStoreEnabled,
	}
}
