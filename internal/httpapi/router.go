// Package httpapi wires the HTTP surface of the FEC report service.
// It keeps handlers thin, delegating business rules to the session service;
// CSV parsing and required-column enforcement happen here, before anything
// reaches the aggregation core.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fecworks/fecreport/internal/service/session"
)

// defaultMaxUploadBytes caps FEC uploads when main does not configure one.
const defaultMaxUploadBytes = 32 << 20

// Server wires handlers and middleware using Chi.
type Server struct {
	svc       session.Service
	ready     ReadyChecker
	maxUpload int64
	log       *slog.Logger
	rt        *chi.Mux
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Option tweaks server construction.
type Option func(*Server)

// WithMaxUploadBytes caps the accepted upload size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithReadyChecker wires the storage backend's readiness probe into /readyz.
func WithReadyChecker(rc ReadyChecker) Option {
	return func(s *Server) { s.ready = rc }
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(svc session.Service, logger *slog.Logger, opts ...Option) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		svc:       svc,
		maxUpload: defaultMaxUploadBytes,
		rt:        r,
		log:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Sessions (v1)
	s.rt.Post("/v1/sessions", s.createSession)
	s.rt.Get("/v1/sessions", s.listSessions)
	s.rt.Get("/v1/sessions/{id}", s.getSession)
	s.rt.Delete("/v1/sessions/{id}", s.deleteSession)
	// Report views (v1)
	s.rt.Get("/v1/sessions/{id}/report", s.getReport)
	s.rt.Get("/v1/sessions/{id}/validation", s.getValidation)
	s.rt.Get("/v1/sessions/{id}/accounts", s.getAccounts)
	s.rt.Get("/v1/sessions/{id}/unmapped", s.getUnmapped)
	s.rt.Get("/v1/sessions/{id}/export", s.exportReport)
	// Manual mapping overrides (v1)
	s.rt.With(s.validatePutMapping()).Put("/v1/sessions/{id}/mappings/{accountNumber}", s.putMapping)
	s.rt.Delete("/v1/sessions/{id}/mappings/{accountNumber}", s.deleteMapping)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
