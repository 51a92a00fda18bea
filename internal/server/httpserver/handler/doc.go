// Package handler provides HTTP handlers for the server's operational
// endpoints: liveness and readiness checks. Metrics are served
// directly by the Prometheus registry's own handler, wired in by
// httpserver.NewRouter.
package handler
