package metric

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// ConnectionCollector exposes rekv_connections_active by sampling an
// atomic counter at scrape time, rather than requiring the server
// supervisor to push a value on every accept/close. The supervisor
// hands it the same counter it uses internally for its N_MAX
// semaphore bookkeeping.
type ConnectionCollector struct {
	desc    *prometheus.Desc
	inFlight *atomic.Int64
}

// NewConnectionCollector builds a ConnectionCollector reading 0 until
// Track is called with the supervisor's live counter.
func NewConnectionCollector() *ConnectionCollector {
	return &ConnectionCollector{
		desc: prometheus.NewDesc(
			"rekv_connections_active",
			"Number of connection handlers currently running.",
			nil, nil,
		),
		inFlight: &atomic.Int64{},
	}
}

// Track points the collector at the supervisor's in-flight counter.
func (c *ConnectionCollector) Track(counter *atomic.Int64) {
	c.inFlight = counter
}

// Describe implements prometheus.Collector.
func (c *ConnectionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *ConnectionCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.inFlight.Load()))
}
