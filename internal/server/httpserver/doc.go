// Package httpserver implements the server's operational HTTP surface
// using the standard library net/http:
//
//   - GET /healthz, GET /readyz: liveness and readiness checks.
//   - GET /metrics: Prometheus exposition format.
//
// It is a separate listener from the RESP2 TCP server and carries no
// authentication or routing beyond these three endpoints.
package httpserver
