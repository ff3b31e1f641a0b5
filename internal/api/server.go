// Package api exposes the analysis, improvement, and assistant
// workflows over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/uxforge/refit/internal/agent"
	"github.com/uxforge/refit/internal/metrics"
	"github.com/uxforge/refit/internal/pipeline"
	"github.com/uxforge/refit/internal/session"
	"github.com/uxforge/refit/internal/speech"
)

// Transcriber converts a WAV recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type Server struct {
	router      *chi.Mux
	port        int
	logger      *slog.Logger
	pipe        *pipeline.Pipeline
	assistant   *agent.Router
	sessions    session.Store
	transcriber Transcriber
	metrics     *metrics.Metrics
}

type Option func(*Server)

// WithTranscriber enables the transcription endpoint.
func WithTranscriber(t Transcriber) Option {
	return func(s *Server) { s.transcriber = t }
}

// WithMetrics mounts the scrape endpoint and request counting.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

func NewServer(port int, pipe *pipeline.Pipeline, assistant *agent.Router, sessions session.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		port:      port,
		logger:    logger,
		pipe:      pipe,
		assistant: assistant,
		sessions:  sessions,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	if s.metrics != nil {
		s.router.Use(s.countRequests)
	}

	s.router.Get("/health", s.health)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", s.createSession)
		r.Get("/sessions/{id}", s.getSession)
		r.Delete("/sessions/{id}", s.deleteSession)
		r.Get("/sessions/{id}/export/{artifact}", s.exportArtifact)

		r.Post("/analyze", s.analyze)
		r.Post("/improve", s.improve)
		r.Post("/summarize", s.summarize)
		r.Post("/ask", s.ask)
		r.Post("/transcribe", s.transcribe)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.CountRequest(route, fmt.Sprintf("%d", ww.Status()))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MaxUploadSize caps transcription request bodies.
const MaxUploadSize = speech.MaxFileSize
