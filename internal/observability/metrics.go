package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the pokedex service.
// Metrics are organized by subsystem: HTTP handling, pokemon operations,
// the connection pool, and the blocking-call worker pool. All counters and
// histograms are registered via promauto for automatic registration with the
// default Prometheus registry.
type Metrics struct {
	// HTTPRequestsTotal counts HTTP requests, labeled by method, route, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request duration in seconds, labeled by method and route.
	HTTPRequestDuration *prometheus.HistogramVec

	// PokemonOperations counts store operations, labeled by operation and outcome.
	PokemonOperations *prometheus.CounterVec

	// PokemonOperationDuration observes store operation duration in seconds, labeled by operation.
	PokemonOperationDuration *prometheus.HistogramVec

	// PoolAcquiresTotal counts connection lease acquisitions.
	PoolAcquiresTotal prometheus.Counter

	// PoolAcquireFailures counts failed lease acquisitions, labeled by reason.
	PoolAcquireFailures *prometheus.CounterVec

	// PoolAcquireDuration observes time spent waiting for a connection lease in seconds.
	PoolAcquireDuration prometheus.Histogram

	// TasksDispatched counts tasks dispatched onto the worker pool.
	TasksDispatched prometheus.Counter

	// TasksRejected counts tasks rejected because no worker freed up in time.
	TasksRejected prometheus.Counter

	// TaskPanics counts panics recovered inside dispatched tasks.
	TaskPanics prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// HTTP
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route, and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds by method and route",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),

		// Pokemon operations
		PokemonOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pokemon_operations_total",
			Help:      "Total number of pokemon store operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		PokemonOperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pokemon_operation_duration_seconds",
			Help:      "Duration of pokemon store operations in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		// Connection pool
		PoolAcquiresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_acquires_total",
			Help:      "Total number of connection lease acquisitions",
		}),
		PoolAcquireFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_acquire_failures_total",
			Help:      "Total number of failed lease acquisitions by reason",
		}, []string{"reason"}),
		PoolAcquireDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pool_acquire_duration_seconds",
			Help:      "Time spent waiting for a connection lease in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		// Worker pool
		TasksDispatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_dispatched_total",
			Help:      "Total number of tasks dispatched onto the worker pool",
		}),
		TasksRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_rejected_total",
			Help:      "Total number of tasks rejected due to worker pool saturation",
		}),
		TaskPanics: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_panics_total",
			Help:      "Total number of panics recovered inside dispatched tasks",
		}),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordOperation records a completed pokemon store operation.
func (m *Metrics) RecordOperation(operation, outcome string, durationSeconds float64) {
	m.PokemonOperations.WithLabelValues(operation, outcome).Inc()
	m.PokemonOperationDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordPoolAcquire records a successful connection lease acquisition.
func (m *Metrics) RecordPoolAcquire(durationSeconds float64) {
	m.PoolAcquiresTotal.Inc()
	m.PoolAcquireDuration.Observe(durationSeconds)
}

// RecordPoolAcquireFailure records a failed lease acquisition.
func (m *Metrics) RecordPoolAcquireFailure(reason string) {
	m.PoolAcquireFailures.WithLabelValues(reason).Inc()
}

// RecordTaskDispatched records a task handed to the worker pool.
func (m *Metrics) RecordTaskDispatched() {
	m.TasksDispatched.Inc()
}

// RecordTaskRejected records a task rejected due to saturation.
func (m *Metrics) RecordTaskRejected() {
	m.TasksRejected.Inc()
}

// RecordTaskPanic records a panic recovered inside a task.
func (m *Metrics) RecordTaskPanic() {
	m.TaskPanics.Inc()
}
