// Package server exposes design generation, colour advice, contrast analysis
// and code export as JSON endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/export"
)

// Routes. Each is also served under the legacy /.netlify/functions prefix.
const (
	RouteGenerateGuide   = "/api/generate-guide"
	RouteRecommendColors = "/api/recommend-colors"
	RouteContrast        = "/api/contrast"
	RouteExport          = "/api/export"

	legacyPrefix = "/.netlify/functions"
)

const (
	HTTPReadTimeout    = 10 * time.Second
	HTTPWriteTimeout   = 90 * time.Second
	HTTPMaxHeaderBytes = 60000
	MaxBodyBytes       = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	gen      *design.Generator
	exporter *export.Exporter
	logger   hclog.Logger
	router   *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l hclog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExporter sets the exporter used by the export endpoint.
func WithExporter(e *export.Exporter) Option {
	return func(s *Server) {
		if e != nil {
			s.exporter = e
		}
	}
}

// New creates a server around gen. A generator without a provider serves
// static fallbacks.
func New(gen *design.Generator, opts ...Option) *Server {
	s := &Server{
		gen:      gen,
		exporter: export.New(),
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	endpoints := map[string]http.HandlerFunc{
		RouteGenerateGuide:   s.handleGenerateGuide,
		RouteRecommendColors: s.handleRecommendColors,
		RouteContrast:        s.handleContrast,
		RouteExport:          s.handleExport,
	}
	for route, fn := range endpoints {
		h := s.postOnly(fn)
		r.HandleFunc(route, h)
		r.HandleFunc(legacyPrefix+route[len("/api"):], h)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "Not Found")
	})
	return r
}

// Handler returns the root handler with CORS and panic recovery applied.
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.logger.StandardLogger(&hclog.StandardLoggerOptions{ForceLevel: hclog.Error})),
		handlers.PrintRecoveryStack(s.logger.IsDebug()),
	)
	return withCORS(recovery(s.router))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error creating listener at %v: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		ReadTimeout:    HTTPReadTimeout,
		WriteTimeout:   HTTPWriteTimeout,
		MaxHeaderBytes: HTTPMaxHeaderBytes,
		Handler:        s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", listener.Addr().String(), "provider", s.gen.ProviderName())
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down server: %w", err)
		}
		return nil
	}
}

// withCORS adds the CORS headers to every response.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

// postOnly answers preflight requests and rejects every method but POST.
func (s *Server) postOnly(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodOptions:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
		case http.MethodPost:
			fn(w, r)
		default:
			s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		}
	}
}

// writeJSON encodes v before writing the status, so a value that cannot be
// encoded becomes a 500 rather than a truncated body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
