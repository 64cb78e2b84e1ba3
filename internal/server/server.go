// Package server exposes the benchmark's Prometheus metrics over HTTP
// while a run is in progress. The server is optional: it starts only
// when an address is configured, and shuts down gracefully with the
// run so scrapes never outlive the process.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/logging"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/parallel"
)

// HTTP timeouts for the metrics endpoints. Scrapes are small, so the
// limits are tight; they mostly guard against stuck clients.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server serves /metrics and /healthz for the duration of a benchmark
// run.
type Server struct {
	addr     string
	security SecurityConfig
	metrics  *Metrics
	logger   logging.Logger

	httpServer *http.Server
	listener   net.Listener
	serveErr   parallel.ErrorCollector
}

// New creates a metrics server bound to addr with the default security
// configuration. The server does not listen until Start is called.
//
// Parameters:
//   - addr: The TCP address to listen on, e.g. ":9090".
//   - metrics: The collector bundle to expose.
//   - logger: Destination for lifecycle and error logs.
//
// Returns:
//   - *Server: The configured server.
func New(addr string, metrics *Metrics, logger logging.Logger) *Server {
	s := &Server{
		addr:     addr,
		security: DefaultSecurityConfig(),
		metrics:  metrics,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          log.New(logWriter{logger: logger}, "", 0),
	}

	return s
}

// Start binds the listener and begins serving in the background.
// Binding happens synchronously so configuration mistakes (a busy
// port, a malformed address) surface as an immediate error instead of
// a log line after the benchmark has already begun.
//
// Returns:
//   - error: A listen failure, or nil once the server is accepting.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics server: listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.serveErr.SetError(err)
			s.logger.Error("metrics server failed", err)
		}
	}()

	return nil
}

// Shutdown stops the server, waiting for in-flight scrapes up to the
// context deadline. Safe to call when Start was never called or
// failed.
//
// Parameters:
//   - ctx: Bounds the graceful drain.
//
// Returns:
//   - error: The shutdown error, if draining did not complete.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.logger.Info("metrics server stopped")
	return err
}

// Err reports the first background serve failure, or nil.
func (s *Server) Err() error {
	return s.serveErr.Err()
}

// Addr returns the bound listen address. Useful when the configured
// address had port 0.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// metricsMiddleware tracks request traffic around next. It touches
// only the metrics bundle, never the logger.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.IncrementTotalRequests()

		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition on GET and rejects
// every other method.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request",
			logging.String("method", r.Method),
			logging.String("remote", r.RemoteAddr))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// logWriter routes the http.Server internal error log into the
// structured logger.
type logWriter struct {
	logger logging.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.logger.Error("http server error", nil,
		logging.String("detail", strings.TrimSpace(string(p))))
	return len(p), nil
}
