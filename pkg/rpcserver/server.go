package rpcserver

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
	"github.com/cuemby/baliusd/pkg/registry"
	"github.com/cuemby/baliusd/pkg/runtime"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// request is the JSON-RPC envelope a caller posts to /{worker}.
type request struct {
	ID     string          `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server is the per-tenant JSON-RPC HTTP server.
type Server struct {
	runtime runtime.Runtime
	failed  *registry.FailedWorkers
	http    *http.Server
}

// New builds a Server listening on addr, dispatching requests into rt
// and checking failed before every dispatch.
func New(addr string, rt runtime.Runtime, failed *registry.FailedWorkers) *Server {
	s := &Server{runtime: rt, failed: failed}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"content-type", "dmtr-api-key"},
	}))
	router.Post("/{worker}", s.handleRequest)

	s.http = &http.Server{Addr: addr, Handler: router}
	return s
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	log.Info("json-rpc server listening on " + s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("json-rpc server: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	worker := chi.URLParam(r, "worker")
	logger := log.WithWorker(worker)

	if reason, ok := s.failed.Read(worker); ok {
		metrics.RPCRequestsTotal.WithLabelValues(worker, "unknown", "error").Inc()
		writeJSON(w, errorResponse{Error: fmt.Sprintf("failed to load into runtime: %s", reason)})
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RPCRequestsTotal.WithLabelValues(worker, "unknown", "error").Inc()
		writeJSON(w, errorResponse{Error: err.Error()})
		return
	}

	logger.Debug().Str("id", req.ID).Str("method", req.Method).Msg("handling request")

	resp, err := s.runtime.HandleRequest(r.Context(), worker, req.Method, req.Params)
	if err != nil {
		metrics.RPCRequestsTotal.WithLabelValues(worker, req.Method, "error").Inc()
		logger.Error().Err(err).Str("id", req.ID).Msg("request failed")
		writeJSON(w, errorResponse{Error: err.Error()})
		return
	}

	metrics.RPCRequestsTotal.WithLabelValues(worker, req.Method, "ok").Inc()
	logger.Debug().Str("id", req.ID).Msg("request successful")
	writeJSON(w, translateResponse(resp))
}

// translateResponse mirrors the original instance's wit::Response match:
// Acknowledge carries no payload, JSON is forwarded as-is, CBOR and
// PartialTx are hex-encoded under a named field.
func translateResponse(resp runtime.Response) any {
	switch resp.Kind {
	case runtime.ResponseJSON:
		return json.RawMessage(resp.Payload)
	case runtime.ResponseCBOR:
		return map[string]string{"cbor": hex.EncodeToString(resp.Payload)}
	case runtime.ResponsePartialTx:
		return map[string]string{"tx": hex.EncodeToString(resp.Payload)}
	default:
		return struct{}{}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
