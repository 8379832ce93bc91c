// Package metrics holds the Prometheus collectors for the client core.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors. Each instance owns its registry so tests
// and multiple clients in one process do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	requests   *prometheus.CounterVec
	teardowns  prometheus.Counter
	inflight   *prometheus.GaugeVec
	operations *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "najdeno",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "API requests by method and response code (0 for transport failures).",
			},
			[]string{"method", "code"},
		),
		teardowns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "najdeno",
				Subsystem: "api",
				Name:      "session_teardowns_total",
				Help:      "Sessions torn down after a 401 response.",
			},
		),
		inflight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "najdeno",
				Subsystem: "state",
				Name:      "inflight_operations",
				Help:      "Dispatched operations that have not settled, per slice.",
			},
			[]string{"slice"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "najdeno",
				Subsystem: "state",
				Name:      "operations_total",
				Help:      "Settled operations by slice, operation and outcome.",
			},
			[]string{"slice", "op", "outcome"},
		),
	}

	m.Registry.MustRegister(m.requests, m.teardowns, m.inflight, m.operations)
	return m
}

// ObserveRequest counts one API request. Nil receivers are no-ops.
func (m *Metrics) ObserveRequest(method string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// ObserveTeardown counts one 401-triggered session teardown.
func (m *Metrics) ObserveTeardown() {
	if m == nil {
		return
	}
	m.teardowns.Inc()
}

// OperationStarted marks an operation of slice as in flight.
func (m *Metrics) OperationStarted(slice string) {
	if m == nil {
		return
	}
	m.inflight.WithLabelValues(slice).Inc()
}

// OperationSettled marks an operation as settled with outcome
// "fulfilled" or "rejected".
func (m *Metrics) OperationSettled(slice, op, outcome string) {
	if m == nil {
		return
	}
	m.inflight.WithLabelValues(slice).Dec()
	m.operations.WithLabelValues(slice, op, outcome).Inc()
}

// Requests exposes the request counter for inspection.
func (m *Metrics) Requests() *prometheus.CounterVec { return m.requests }

// Teardowns exposes the teardown counter for inspection.
func (m *Metrics) Teardowns() prometheus.Counter { return m.teardowns }

// InFlight exposes the in-flight gauge for inspection.
func (m *Metrics) InFlight() *prometheus.GaugeVec { return m.inflight }

// Operations exposes the settled-operation counter for inspection.
func (m *Metrics) Operations() *prometheus.CounterVec { return m.operations }
