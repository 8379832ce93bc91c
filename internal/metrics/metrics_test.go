package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOperationLifecycle(t *testing.T) {
	m := New()

	m.OperationStarted("item")
	m.OperationStarted("item")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.InFlight().WithLabelValues("item")))

	m.OperationSettled("item", "fetchItems", "fulfilled")
	m.OperationSettled("item", "fetchItems", "rejected")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight().WithLabelValues("item")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations().WithLabelValues("item", "fetchItems", "rejected")))
}

func TestRequestsAndTeardowns(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", 200)
	m.ObserveRequest("GET", 401)
	m.ObserveTeardown()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests().WithLabelValues("GET", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Teardowns()))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", 200)
		m.ObserveTeardown()
		m.OperationStarted("auth")
		m.OperationSettled("auth", "login", "fulfilled")
	})
}
