package metricsserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// Server serves Prometheus metrics on its own address, independent of
// the JSON-RPC server and edge proxy.
type Server struct {
	http *http.Server
}

// New builds a Server listening on addr.
func New(addr string) *Server {
	router := chi.NewRouter()
	router.Handle("/metrics", metrics.Handler())

	return &Server{http: &http.Server{Addr: addr, Handler: router}}
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	log.Info("metrics server listening on " + s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
