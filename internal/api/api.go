// Package api serves pidone's optional HTTP status endpoint: health and
// readiness probes, a JSON status document and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Status describes the running supervisor.
type Status interface {
	// ChildPID returns the supervised child's pid, or 0 before it starts.
	ChildPID() int
}

// StatusInfo is the document served at /status.
type StatusInfo struct {
	PID       int    `json:"pid"`
	ChildPID  int    `json:"child_pid"`
	UseSetsid bool   `json:"setsid"`
	Command   string `json:"command"`
	Version   string `json:"version"`
}

// Config holds static values reported by the server.
type Config struct {
	PID       int
	UseSetsid bool
	Command   string
	Version   string
}

// Server is the HTTP status server for pidone.
type Server struct {
	cfg     Config
	status  Status
	metrics http.Handler
	logger  *slog.Logger
	mux     *http.ServeMux
	ln      net.Listener
	srv     *http.Server
}

// NewServer creates a status server. metrics may be nil, in which case
// /metrics is not registered.
func NewServer(cfg Config, status Status, metrics http.Handler, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		status:  status,
		metrics: metrics,
		logger:  logger,
	}
	s.mux = s.buildMux()
	return s
}

func (s *Server) buildMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /status", s.handleStatus)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	return mux
}

// StartTCP begins serving on a TCP address.
func (s *Server) StartTCP(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot bind %s: %w", addr, err)
	}

	s.ln = ln
	s.srv = &http.Server{Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}

	host, _, _ := net.SplitHostPort(addr)
	if host == "0.0.0.0" || host == "" || host == "::" {
		s.logger.Debug("status server bound to all interfaces", "addr", addr)
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status server error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Addr returns the listener address, or empty if not started.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return ""
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.status.ChildPID() > 0 {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusInfo{
		PID:       s.cfg.PID,
		ChildPID:  s.status.ChildPID(),
		UseSetsid: s.cfg.UseSetsid,
		Command:   s.cfg.Command,
		Version:   s.cfg.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
