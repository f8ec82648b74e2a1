// Package server exposes the engine's command/query surface over HTTP+JSON,
// the reference transport for external controllers.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"simvator/src/sim"
)

type Server struct {
	engine *sim.Engine
	http   *http.Server
}

func New(addr string, engine *sim.Engine) *Server {
	s := &Server{engine: engine}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/step", s.handleStep)
	mux.HandleFunc("POST /api/elevators/{id}/go_to_floor", s.handleGoToFloor)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/traffic/next", s.handleTrafficNext)
	mux.HandleFunc("GET /api/traffic/info", s.handleTrafficInfo)

	s.http = &http.Server{
		Addr:    addr,
		Handler: withRequestLogging(mux),
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	slog.Info("engine server listening", "addr", s.http.Addr, "run_id", s.engine.RunID())
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests. A running step is never cancelled;
// the engine does not observe deadlines.
func (s *Server) Shutdown(grace time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Handler exposes the routed handler, used by the httptest suites.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
