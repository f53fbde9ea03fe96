package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: prometheus/promauto registers metrics globally, so we need to use
// unique namespaces per test to avoid registration conflicts.

func getHistogramSampleCount(h prometheus.Histogram) (uint64, error) {
	var metric dto.Metric
	if err := h.(prometheus.Metric).Write(&metric); err != nil {
		return 0, err
	}
	return metric.GetHistogram().GetSampleCount(), nil
}

func TestNewMetrics(t *testing.T) {
	// Use unique namespace to avoid conflicts with other tests
	m := NewMetrics("test_pokedex_new")

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.PokemonOperations)
	assert.NotNil(t, m.PokemonOperationDuration)
	assert.NotNil(t, m.PoolAcquiresTotal)
	assert.NotNil(t, m.PoolAcquireFailures)
	assert.NotNil(t, m.PoolAcquireDuration)
	assert.NotNil(t, m.TasksDispatched)
	assert.NotNil(t, m.TasksRejected)
	assert.NotNil(t, m.TaskPanics)
}

func TestRecordHTTPRequest(t *testing.T) {
	m := NewMetrics("test_http_request")

	m.RecordHTTPRequest("GET", "/api/v1/pokemons", 200, 0.05)
	m.RecordHTTPRequest("GET", "/api/v1/pokemons", 200, 0.02)
	m.RecordHTTPRequest("POST", "/api/v1/pokemons", 422, 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/pokemons", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/pokemons", "422")))
}

func TestRecordOperation(t *testing.T) {
	m := NewMetrics("test_operation")

	m.RecordOperation("get", "success", 0.01)
	m.RecordOperation("get", "not_found", 0.005)
	m.RecordOperation("create", "success", 0.02)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.PokemonOperations.WithLabelValues("get", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.PokemonOperations.WithLabelValues("get", "not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.PokemonOperations.WithLabelValues("create", "success")))
}

func TestRecordPoolAcquire(t *testing.T) {
	m := NewMetrics("test_pool_acquire")

	initial := testutil.ToFloat64(m.PoolAcquiresTotal)
	m.RecordPoolAcquire(0.001)
	assert.Equal(t, initial+1, testutil.ToFloat64(m.PoolAcquiresTotal))

	histCount, err := getHistogramSampleCount(m.PoolAcquireDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), histCount)
}

func TestRecordPoolAcquireFailure(t *testing.T) {
	m := NewMetrics("test_pool_acquire_failure")

	m.RecordPoolAcquireFailure("exhausted")
	m.RecordPoolAcquireFailure("exhausted")
	m.RecordPoolAcquireFailure("connection")

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.PoolAcquireFailures.WithLabelValues("exhausted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.PoolAcquireFailures.WithLabelValues("connection")))
}

func TestRecordTaskCounters(t *testing.T) {
	m := NewMetrics("test_task_counters")

	m.RecordTaskDispatched()
	m.RecordTaskDispatched()
	m.RecordTaskRejected()
	m.RecordTaskPanic()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.TasksDispatched))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TasksRejected))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TaskPanics))
}
