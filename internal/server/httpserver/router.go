package httpserver

import (
	"net/http"

	"github.com/yndnr/rekv-go/internal/server/httpserver/handler"
	"github.com/yndnr/rekv-go/internal/telemetry/logger"
	"github.com/yndnr/rekv-go/internal/telemetry/metric"
)

// NewRouter builds the operational HTTP mux: liveness/readiness
// checks and the Prometheus metrics endpoint. It carries no knowledge
// of the RESP2 protocol or the cache; those are exposed only over the
// redisserver.Server's own TCP listener.
func NewRouter(h *handler.Handler, metrics *metric.Registry, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", Chain(http.HandlerFunc(h.Health), RequestID(), Recover(log)))
	mux.Handle("GET /readyz", Chain(http.HandlerFunc(h.Ready), RequestID(), Recover(log)))
	mux.Handle("GET /metrics", Chain(metrics.Handler(), RequestID(), Recover(log)))
	return mux
}
