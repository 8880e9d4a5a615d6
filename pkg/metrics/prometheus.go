// Package metrics provides Prometheus metrics for the job recommendation service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline build metrics
	buildsTotal      prometheus.Counter
	buildFailures    *prometheus.CounterVec
	buildDuration    prometheus.Histogram
	kmeansIterations prometheus.Histogram
	kmeansInertia    prometheus.Gauge
	catalogSize      prometheus.Gauge
	clusterSize      *prometheus.GaugeVec
	eligibleClusters prometheus.Gauge

	// Match metrics
	matchesTotal *prometheus.CounterVec
	matchLatency prometheus.Histogram

	// Queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec

	// Worker metrics
	workerCount     prometheus.Gauge
	workerProcessed prometheus.Counter
	workerErrors    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

const (
	defaultNamespace = "jobrec"
	defaultSubsystem = "recommender"
)

// latencyBuckets are millisecond buckets for build, match and HTTP timings.
var latencyBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // shared default

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(
		WithNamespace(defaultNamespace),
		WithSubsystem(defaultSubsystem),
		WithHistogramBuckets(latencyBuckets),
		WithPrometheusRegistry(customRegistry),
	)
	customRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: latencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.buildsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "builds_total",
		Help:      "Total number of successful pipeline builds (encode, cluster, estimate)",
	})

	m.buildFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_failures_total",
		Help:      "Total number of failed pipeline builds by error kind",
	}, []string{"kind"})

	m.buildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_duration_milliseconds",
		Help:      "Pipeline build duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.kmeansIterations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "kmeans_iterations",
		Help:      "Number of refinement iterations used by the last k-means fits",
		Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 300, 1000},
	})

	m.kmeansInertia = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "kmeans_inertia",
		Help:      "Within-cluster sum of squared distances of the current clustering",
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_jobs",
		Help:      "Number of job records in the current clustering",
	})

	m.clusterSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cluster_members",
		Help:      "Number of job records per cluster in the current clustering",
	}, []string{"cluster"})

	m.eligibleClusters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eligible_clusters",
		Help:      "Number of clusters with a fitted experience density",
	})

	m.matchesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_total",
		Help:      "Total number of candidate matches by outcome",
	}, []string{"outcome"})

	m.matchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_latency_milliseconds",
		Help:      "Candidate match latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of queued match tasks",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum number of queued match tasks",
	})

	m.queueEnqueueErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Rejected match task enqueues by reason",
	}, []string{"reason"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of match workers",
	})

	m.workerProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_tasks_processed_total",
		Help:      "Total number of match tasks processed by workers",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_task_errors_total",
		Help:      "Total number of match tasks that ended in an error",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordBuild records a successful pipeline build.
func RecordBuild(durationMs float64, iterations int, inertia float64) {
	globalManager.buildsTotal.Inc()
	globalManager.buildDuration.Observe(durationMs)
	globalManager.kmeansIterations.Observe(float64(iterations))
	globalManager.kmeansInertia.Set(inertia)
}

// RecordBuildFailure records a failed build labelled by error kind.
func RecordBuildFailure(kind string) {
	globalManager.buildFailures.WithLabelValues(kind).Inc()
}

// UpdateClusterSizes replaces the per-cluster member gauges.
func UpdateClusterSizes(sizes []int) {
	globalManager.clusterSize.Reset()
	total := 0
	for id, n := range sizes {
		globalManager.clusterSize.WithLabelValues(strconv.Itoa(id)).Set(float64(n))
		total += n
	}
	globalManager.catalogSize.Set(float64(total))
}

// UpdateEligibleClusters sets the number of clusters with a fitted density.
func UpdateEligibleClusters(n int) {
	globalManager.eligibleClusters.Set(float64(n))
}

// RecordMatch records a match outcome ("matched", "no_eligible_cluster", "error").
func RecordMatch(outcome string, latencyMs float64) {
	globalManager.matchesTotal.WithLabelValues(outcome).Inc()
	globalManager.matchLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError records a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the number of workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessed increments the processed task counter.
func RecordWorkerProcessed() {
	globalManager.workerProcessed.Inc()
}

// RecordWorkerError increments the failed task counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
