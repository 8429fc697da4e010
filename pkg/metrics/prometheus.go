// Package metrics provides Prometheus metrics for the ladder tool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exported by ladder.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Extraction
	linesParsed      prometheus.Counter
	linesSkipped     *prometheus.CounterVec
	recordsExtracted prometheus.Gauge

	// Snapshot
	snapshotLoadDuration prometheus.Histogram
	snapshotSaveDuration prometheus.Histogram
	snapshotErrors       *prometheus.CounterVec

	// Queries
	queries         *prometheus.CounterVec
	bridgesReturned prometheus.Histogram

	// Line protocol
	protocolCommands *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// DefaultNamespace prefixes every metric name unless Init overrides it.
const DefaultNamespace = "ladder"

// latencyBuckets covers millisecond timings from a cached read to a
// multi-second rebuild.
var latencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000} //nolint:gochecknoglobals // shared bucket layout

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry *prometheus.Registry //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	Init()
}

// Init replaces the global manager and its registry. It is meant to be
// called once at startup, before any handler serves GetRegistry.
func Init(opts ...Option) {
	reg := prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(reg)}, opts...)...)
	customRegistry = reg
}

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: DefaultNamespace,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all collectors
	auto := promauto.With(m.registry)

	m.linesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "extract_lines_total",
		Help:      "Total number of source lines read by the extractor",
	})

	m.linesSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "extract_lines_skipped_total",
		Help:      "Source lines that produced no record, by reason",
	}, []string{"reason"})

	m.recordsExtracted = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "extract_records",
		Help:      "Number of records in the most recently built index",
	})

	m.snapshotLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "snapshot_load_duration_milliseconds",
		Help:      "Time spent loading and validating the snapshot",
		Buckets:   latencyBuckets,
	})

	m.snapshotSaveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "snapshot_save_duration_milliseconds",
		Help:      "Time spent writing the snapshot",
		Buckets:   latencyBuckets,
	})

	m.snapshotErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "snapshot_errors_total",
		Help:      "Snapshot failures by kind (missing, corrupt, io)",
	}, []string{"kind"})

	m.queries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queries_total",
		Help:      "Lookup and suggest queries by outcome",
	}, []string{"op", "outcome"})

	m.bridgesReturned = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "bridges_returned",
		Help:      "Number of bridge candidates returned per suggest call",
		Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
	})

	m.protocolCommands = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "protocol_commands_total",
		Help:      "Line protocol commands by name",
	}, []string{"command"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordLinesParsed adds n source lines read by the extractor.
func RecordLinesParsed(n int) {
	if n > 0 {
		globalManager.linesParsed.Add(float64(n))
	}
}

// RecordLinesSkipped adds n lines that produced no record for reason.
func RecordLinesSkipped(reason string, n int) {
	if n > 0 {
		globalManager.linesSkipped.WithLabelValues(reason).Add(float64(n))
	}
}

// UpdateRecordsExtracted sets the size of the last built index.
func UpdateRecordsExtracted(count int) {
	globalManager.recordsExtracted.Set(float64(count))
}

// RecordSnapshotLoad records snapshot load latency.
func RecordSnapshotLoad(latencyMs float64) {
	globalManager.snapshotLoadDuration.Observe(latencyMs)
}

// RecordSnapshotSave records snapshot save latency.
func RecordSnapshotSave(latencyMs float64) {
	globalManager.snapshotSaveDuration.Observe(latencyMs)
}

// RecordSnapshotError counts a snapshot failure of the given kind.
func RecordSnapshotError(kind string) {
	globalManager.snapshotErrors.WithLabelValues(kind).Inc()
}

// RecordQuery counts a lookup/suggest call and its outcome.
func RecordQuery(op, outcome string) {
	globalManager.queries.WithLabelValues(op, outcome).Inc()
}

// RecordBridgesReturned observes the size of a suggest result.
func RecordBridgesReturned(n int) {
	globalManager.bridgesReturned.Observe(float64(n))
}

// RecordProtocolCommand counts one line protocol command.
func RecordProtocolCommand(command string) {
	globalManager.protocolCommands.WithLabelValues(command).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError counts an error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
