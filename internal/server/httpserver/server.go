// Package httpserver serves the metrics and health-check endpoints
// over plain HTTP, separate from the RESP2 TCP listener in
// internal/server/redisserver.
package httpserver

import (
	"context"
	"net/http"
)

// Server wraps an http.Server for the operational HTTP surface.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server bound to addr.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		handler: handler,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
