// Package metrics provides Prometheus metrics for the fastbreak advisor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Advisory run metrics.
	runsTotal        prometheus.Counter
	runErrors        prometheus.Counter
	runDuration      prometheus.Histogram
	projectionRows   prometheus.Gauge
	rosterSize       prometheus.Gauge
	waiverSize       prometheus.Gauge
	playersMatched   prometheus.Counter
	playersUnmatched prometheus.Counter
	recommendations  *prometheus.CounterVec

	// Source fetch metrics (projections csv, sheets, league, slack).
	sourceFetches      *prometheus.CounterVec
	sourceFetchLatency *prometheus.HistogramVec

	// HTTP metrics for serve mode.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fastbreak",
		subsystem:        "advisor",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of advisory runs",
	})

	m.runErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_errors_total",
		Help:      "Total number of advisory runs that failed",
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_milliseconds",
		Help:      "Histogram of advisory run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.projectionRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projection_rows",
		Help:      "Number of projection rows loaded by the last run",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of roster players seen by the last run",
	})

	m.waiverSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "waiver_size",
		Help:      "Number of waiver players seen by the last run",
	})

	m.playersMatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_matched_total",
		Help:      "Total player names resolved to a projection row",
	})

	m.playersUnmatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_unmatched_total",
		Help:      "Total player names with no projection match (data quality)",
	})

	m.recommendations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_total",
			Help:      "Advisory outcomes by kind (emitted, none)",
		},
		[]string{"outcome"},
	)

	m.sourceFetches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "source_fetches_total",
			Help:      "Input source fetches by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	m.sourceFetchLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "source_fetch_latency_milliseconds",
			Help:      "Input source fetch latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"source"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers backed by the global manager.

// RecordRun records one completed advisory run and its duration.
func RecordRun(durationMs float64) {
	globalManager.runsTotal.Inc()
	globalManager.runDuration.Observe(durationMs)
}

// RecordRunError records a failed advisory run.
func RecordRunError() {
	globalManager.runErrors.Inc()
}

// UpdateProjectionRows sets the projection row count of the last run.
func UpdateProjectionRows(n int) {
	globalManager.projectionRows.Set(float64(n))
}

// UpdateRosterSize sets the roster player count of the last run.
func UpdateRosterSize(n int) {
	globalManager.rosterSize.Set(float64(n))
}

// UpdateWaiverSize sets the waiver player count of the last run.
func UpdateWaiverSize(n int) {
	globalManager.waiverSize.Set(float64(n))
}

// RecordPlayerMatched counts a name resolved to a projection row.
func RecordPlayerMatched() {
	globalManager.playersMatched.Inc()
}

// RecordPlayerUnmatched counts a name with no projection match.
func RecordPlayerUnmatched() {
	globalManager.playersUnmatched.Inc()
}

// RecordRecommendation counts an advisory outcome: "emitted" or "none".
func RecordRecommendation(outcome string) {
	globalManager.recommendations.WithLabelValues(outcome).Inc()
}

// RecordSourceFetch counts a source fetch by outcome ("ok" or "error").
func RecordSourceFetch(source, outcome string) {
	globalManager.sourceFetches.WithLabelValues(source, outcome).Inc()
}

// RecordSourceFetchLatency observes a source fetch duration.
func RecordSourceFetchLatency(source string, latencyMs float64) {
	globalManager.sourceFetchLatency.WithLabelValues(source).Observe(latencyMs)
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
