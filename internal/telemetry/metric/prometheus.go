// Package metric provides the Prometheus metrics registry.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric the server reports, backed by a private
// prometheus.Registry rather than the global default so a test can
// build an isolated instance.
type Registry struct {
	registry *prometheus.Registry

	CommandsTotal    *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	ConnectionsTotal prometheus.Counter
	CacheKeys        prometheus.Gauge
	RDBLoadSeconds   prometheus.Gauge

	connections *ConnectionCollector
}

// NewRegistry builds a Registry with all metrics registered, plus the
// standard Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rekv_commands_total",
			Help: `Completed command dispatches by verb, including "unknown".`,
		}, []string{"verb"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rekv_command_duration_seconds",
			Help:    "Command dispatch latency by verb.",
			Buckets: prometheus.DefBuckets,
		}, []string{"verb"}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rekv_connections_total",
			Help: "Connections accepted since process start.",
		}),
		CacheKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rekv_cache_keys",
			Help: "Number of entries currently held by the cache.",
		}),
		RDBLoadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rekv_rdb_load_seconds",
			Help: "Time taken by the startup RDB load, unset if no snapshot was configured.",
		}),
		connections: NewConnectionCollector(),
	}

	reg.MustRegister(
		r.CommandsTotal,
		r.CommandDuration,
		r.ConnectionsTotal,
		r.CacheKeys,
		r.RDBLoadSeconds,
		r.connections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide Registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns the HTTP handler that serves this Registry's metrics
// in Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordCommand increments the per-verb dispatch counter and observes
// its latency in one call, matching how the dispatcher reports every
// completed command.
func (r *Registry) RecordCommand(verb string, seconds float64) {
	r.CommandsTotal.WithLabelValues(verb).Inc()
	r.CommandDuration.WithLabelValues(verb).Observe(seconds)
}

// IncConnectionsTotal records one newly accepted connection.
func (r *Registry) IncConnectionsTotal() {
	r.ConnectionsTotal.Inc()
}

// SetCacheKeys reports the cache's current entry count. The dispatcher
// calls this after every SET and DEL, per the metric's sampling policy.
func (r *Registry) SetCacheKeys(n int) {
	r.CacheKeys.Set(float64(n))
}

// SetRDBLoadSeconds records how long the startup RDB load took.
func (r *Registry) SetRDBLoadSeconds(seconds float64) {
	r.RDBLoadSeconds.Set(seconds)
}

// ConnectionsActive returns the ConnectionCollector this Registry
// exposes rekv_connections_active through, so the server supervisor
// can drive it directly from its own in-flight counter.
func (r *Registry) ConnectionsActive() *ConnectionCollector {
	return r.connections
}
