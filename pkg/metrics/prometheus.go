// Package metrics provides Prometheus metrics for the momentum scoring service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Moment pipeline
	momentsSubmitted prometheus.Counter
	momentsDuplicate prometheus.Counter
	momentsScored    prometheus.Counter
	momentsFailed    prometheus.Counter
	scoringLatency   prometheus.Histogram
	scoreByRole      *prometheus.HistogramVec
	storedResults    prometheus.Gauge

	// Data source
	fetchLatency       *prometheus.HistogramVec
	fetchErrors        *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	breakerState       *prometheus.GaugeVec
	breakerTransitions *prometheus.CounterVec
	rateLimitWait      prometheus.Histogram

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueue       prometheus.Counter
	queueDequeue       prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
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
		namespace:        "mss",
		subsystem:        "momentum",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.histogramBuckets
	}
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.momentsSubmitted = auto.NewCounter(m.counterOpts("moments_submitted_total", "Total number of moments accepted for scoring"))
	m.momentsDuplicate = auto.NewCounter(m.counterOpts("moments_duplicate_total", "Total number of duplicate moment submissions"))
	m.momentsScored = auto.NewCounter(m.counterOpts("moments_scored_total", "Total number of moments scored"))
	m.momentsFailed = auto.NewCounter(m.counterOpts("moments_failed_total", "Total number of moments that could not be scored"))
	m.scoringLatency = auto.NewHistogram(m.histogramOpts("scoring_latency_milliseconds", "End-to-end moment scoring latency in milliseconds", nil))
	m.scoreByRole = auto.NewHistogramVec(
		m.histogramOpts("score", "Distribution of momentum shift scores", prometheus.LinearBuckets(0, 10, 11)),
		[]string{"role"},
	)
	m.storedResults = auto.NewGauge(m.gaugeOpts("stored_results", "Number of scored moments held in the result store"))

	m.fetchLatency = auto.NewHistogramVec(
		m.histogramOpts("fetch_latency_milliseconds", "Play-by-play fetch latency in milliseconds", nil),
		[]string{"role"},
	)
	m.fetchErrors = auto.NewCounterVec(m.counterOpts("fetch_errors_total", "Play-by-play fetch failures"), []string{"role", "reason"})
	m.cacheLookups = auto.NewCounterVec(m.counterOpts("cache_lookups_total", "Record cache lookups by backend and result"), []string{"backend", "result"})
	m.breakerState = auto.NewGaugeVec(m.gaugeOpts("breaker_state", "Circuit breaker state (0 closed, 1 half-open, 2 open)"), []string{"name"})
	m.breakerTransitions = auto.NewCounterVec(m.counterOpts("breaker_transitions_total", "Circuit breaker state changes"), []string{"name", "from", "to"})
	m.rateLimitWait = auto.NewHistogram(m.histogramOpts("rate_limit_wait_milliseconds", "Time spent waiting on the data-source rate limiter", nil))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued moments"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue utilization ratio (current size / capacity)"))
	m.queueEnqueue = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Total number of moments enqueued"))
	m.queueDequeue = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Total number of moments dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Total number of rejected enqueues"))

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Number of workers in the pool"))
	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Number of workers currently scoring"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds", "Per-job worker latency in milliseconds", nil))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Total number of worker job failures"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", nil),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
}

// RecordMomentSubmitted increments the accepted moments counter.
func RecordMomentSubmitted() { globalManager.momentsSubmitted.Inc() }

// RecordMomentDuplicate increments the duplicate submissions counter.
func RecordMomentDuplicate() { globalManager.momentsDuplicate.Inc() }

// RecordMomentScored increments the scored moments counter.
func RecordMomentScored() { globalManager.momentsScored.Inc() }

// RecordMomentFailed increments the failed moments counter.
func RecordMomentFailed() { globalManager.momentsFailed.Inc() }

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordScore records a player's momentum shift score.
func RecordScore(role string, score float64) {
	globalManager.scoreByRole.WithLabelValues(role).Observe(score)
}

// UpdateStoredResults sets the number of stored results.
func UpdateStoredResults(count int) {
	globalManager.storedResults.Set(float64(count))
}

// RecordFetchLatency records a data-source fetch latency.
func RecordFetchLatency(role string, latencyMs float64) {
	globalManager.fetchLatency.WithLabelValues(role).Observe(latencyMs)
}

// RecordFetchError increments the fetch failure counter.
func RecordFetchError(role, reason string) {
	globalManager.fetchErrors.WithLabelValues(role, reason).Inc()
}

// RecordCacheLookup records a cache hit or miss for backend.
func RecordCacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.cacheLookups.WithLabelValues(backend, result).Inc()
}

// UpdateBreakerState sets the numeric state of a circuit breaker.
func UpdateBreakerState(name string, state int) {
	globalManager.breakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBreakerTransition counts a circuit breaker state change.
func RecordBreakerTransition(name, from, to string) {
	globalManager.breakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordRateLimitWait records time spent blocked on the rate limiter.
func RecordRateLimitWait(waitMs float64) {
	globalManager.rateLimitWait.Observe(waitMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueue.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeue.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method string, status int) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, status int, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, strconv.Itoa(status)).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
