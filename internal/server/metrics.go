package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsNamespace prefixes every metric exported by this process.
const metricsNamespace = "sharedvars"

// Metrics bundles the Prometheus collectors exported by the optional
// metrics server. Each instance owns a private registry, so tests can
// create as many Metrics as they like without duplicate-registration
// panics from the default global registry.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
	benchmarkRuns  prometheus.Counter
	policyRuns     *prometheus.CounterVec
	policyDuration *prometheus.GaugeVec
}

// NewMetrics creates the collector set: HTTP traffic gauges, benchmark
// run counters keyed by accumulation policy, and the Go runtime
// collector (go_* metrics).
//
// Returns:
//   - *Metrics: A ready-to-serve metrics bundle.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_requests",
			Help:      "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served.",
		}),
		benchmarkRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "benchmark_runs_total",
			Help:      "Number of benchmark suites executed while the server was up.",
		}),
		policyRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "policy_runs_total",
			Help:      "Number of completed measurements per accumulation policy.",
		}, []string{"policy"}),
		policyDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "policy_duration_seconds",
			Help:      "Best wall-clock duration of the most recent run, per policy.",
		}, []string{"policy"}),
	}

	registry.MustRegister(collectors.NewGoCollector())
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m
}

// IncrementActiveRequests increases the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decreases the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// IncrementTotalRequests counts one served HTTP request.
func (m *Metrics) IncrementTotalRequests() {
	m.requestsTotal.Inc()
}

// RecordBenchmarkRun counts one executed benchmark suite.
func (m *Metrics) RecordBenchmarkRun() {
	m.benchmarkRuns.Inc()
}

// RecordPolicyRun counts one measurement of the named policy. The
// signature matches the runner's per-policy hook so the two can be
// wired directly.
//
// Parameters:
//   - policy: The accumulation policy label, e.g. "reduce".
func (m *Metrics) RecordPolicyRun(policy string) {
	m.policyRuns.WithLabelValues(policy).Inc()
}

// SetPolicyDuration publishes the best wall-clock duration of the most
// recent run of the named policy.
//
// Parameters:
//   - policy: The accumulation policy label.
//   - d: The fastest trial duration for that policy.
func (m *Metrics) SetPolicyDuration(policy string, d time.Duration) {
	m.policyDuration.WithLabelValues(policy).Set(d.Seconds())
}

// WritePrometheus serves the registry contents in the Prometheus text
// exposition format.
//
// Parameters:
//   - w: The response writer.
//   - r: The scrape request.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
