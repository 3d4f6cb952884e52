// Package metrics provides Prometheus metrics for the elite-cheer-stats
// ranking service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the ranking service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Store fetch metrics
	fetchRequests  prometheus.Counter
	fetchErrors    prometheus.Counter
	fetchLatency   prometheus.Histogram
	rowsFetched    prometheus.Counter
	lastFetchRows  prometheus.Gauge
	staleDiscarded prometheus.Counter

	// Aggregation metrics
	recordsDropped   *prometheus.CounterVec
	rankingsComputed prometheus.Counter
	rankingLatency   prometheus.Histogram
	teamsRanked      prometheus.Gauge

	// Snapshot cache metrics
	snapshotHits    prometheus.Counter
	snapshotMisses  prometheus.Counter
	snapshotEntries prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ecs",
		subsystem:        "rankings",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
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

	m.fetchRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_fetch_total",
		Help:      "Total number of fetches issued against the results store",
	})

	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_fetch_errors_total",
		Help:      "Total number of failed fetches against the results store",
	})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_fetch_latency_milliseconds",
		Help:      "Histogram of results store fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rowsFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_rows_fetched_total",
		Help:      "Total number of result rows fetched from the store",
	})

	m.lastFetchRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_last_fetch_rows",
		Help:      "Number of rows returned by the most recent fetch",
	})

	m.staleDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_stale_responses_discarded_total",
		Help:      "Responses discarded because a newer filter selection superseded them",
	})

	m.recordsDropped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "records_dropped_total",
			Help:      "Result records excluded from aggregation by drop policy",
		},
		[]string{"reason"},
	)

	m.rankingsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_computed_total",
		Help:      "Total number of ranking aggregation passes",
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_latency_milliseconds",
		Help:      "Histogram of ranking aggregation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.teamsRanked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_ranked",
		Help:      "Number of teams in the most recently computed ranking",
	})

	m.snapshotHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_hits_total",
		Help:      "Ranking queries served from the snapshot cache",
	})

	m.snapshotMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_misses_total",
		Help:      "Ranking queries that required a fresh fetch and recompute",
	})

	m.snapshotEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_entries",
		Help:      "Current number of cached ranking snapshots",
	})

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

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordFetch records one store fetch and its latency in milliseconds.
func RecordFetch(latencyMs float64) {
	globalManager.fetchRequests.Inc()
	globalManager.fetchLatency.Observe(latencyMs)
}

// RecordFetchError increments the fetch error counter.
func RecordFetchError() {
	globalManager.fetchErrors.Inc()
}

// RecordRowsFetched tracks the row count of a completed fetch.
func RecordRowsFetched(rows int) {
	globalManager.rowsFetched.Add(float64(rows))
	globalManager.lastFetchRows.Set(float64(rows))
}

// RecordStaleDiscarded increments the superseded-response counter.
func RecordStaleDiscarded() {
	globalManager.staleDiscarded.Inc()
}

// RecordRecordDropped counts a record excluded from aggregation.
func RecordRecordDropped(reason string) {
	globalManager.recordsDropped.WithLabelValues(reason).Inc()
}

// RecordRankingComputed records one aggregation pass and its latency.
func RecordRankingComputed(latencyMs float64) {
	globalManager.rankingsComputed.Inc()
	globalManager.rankingLatency.Observe(latencyMs)
}

// UpdateTeamsRanked sets the size of the most recent ranking.
func UpdateTeamsRanked(count int) {
	globalManager.teamsRanked.Set(float64(count))
}

// RecordSnapshotHit increments the snapshot cache hit counter.
func RecordSnapshotHit() {
	globalManager.snapshotHits.Inc()
}

// RecordSnapshotMiss increments the snapshot cache miss counter.
func RecordSnapshotMiss() {
	globalManager.snapshotMisses.Inc()
}

// UpdateSnapshotEntries sets the current snapshot cache size.
func UpdateSnapshotEntries(count int) {
	globalManager.snapshotEntries.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
