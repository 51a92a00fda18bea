// Package metric provides the Prometheus metrics registry.
//
//   - prometheus.go: Registry definition, Global accessor, HTTP handler.
//   - collector.go: a custom prometheus.Collector for values that are
//     cheaper to sample at scrape time than to push on every mutation.
//
// Metrics are exposed at /metrics in Prometheus text exposition format.
package metric
