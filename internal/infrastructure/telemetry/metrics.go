package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPDurationBuckets are request latency buckets in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Metrics holds every Prometheus collector the service exports.
// Each instance owns its registry so tests can create fresh ones.
type Metrics struct {
	registry *prometheus.Registry

	HTTPInFlight        prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AuditWriteFailures prometheus.Counter
	AuthzDenials       *prometheus.CounterVec

	SyncAttempts *prometheus.CounterVec
	SyncRuns     *prometheus.CounterVec
	SyncDuration *prometheus.HistogramVec

	DBSlowQueries prometheus.Counter
}

// NewMetrics creates and registers all collectors, including Go runtime and process metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vendorhub",
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendorhub",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vendorhub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   HTTPDurationBuckets,
		}, []string{"method", "route", "status"}),

		AuditWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vendorhub",
			Name:      "audit_write_failures_total",
			Help:      "Audit entries that could not be persisted.",
		}),
		AuthzDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendorhub",
			Name:      "authz_denials_total",
			Help:      "Requests denied by the authorization gate.",
		}, []string{"operation"}),

		SyncAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendorhub",
			Name:      "sync_attempts_total",
			Help:      "Calls made to external systems, by result.",
		}, []string{"direction", "resource_type", "status"}),
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendorhub",
			Name:      "sync_runs_total",
			Help:      "Completed sync runs, by final outcome.",
		}, []string{"direction", "resource_type", "outcome"}),
		SyncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vendorhub",
			Name:      "sync_attempt_duration_seconds",
			Help:      "Latency of single external system calls.",
			Buckets:   HTTPDurationBuckets,
		}, []string{"direction", "resource_type"}),

		DBSlowQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vendorhub",
			Name:      "db_slow_queries_total",
			Help:      "SQL statements slower than the configured threshold.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPInFlight,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuditWriteFailures,
		m.AuthzDenials,
		m.SyncAttempts,
		m.SyncRuns,
		m.SyncDuration,
		m.DBSlowQueries,
	)
	return m
}

// Registry exposes the underlying registry (for tests and extra collectors)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
