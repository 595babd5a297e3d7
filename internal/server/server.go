// Package server wires the chi router, middleware chain, and handlers into
// an HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/quizforge/quizforge/internal/errors"
	"github.com/quizforge/quizforge/internal/jobs"
	"github.com/quizforge/quizforge/internal/server/handlers"
	"github.com/quizforge/quizforge/internal/server/middleware"
	"github.com/quizforge/quizforge/pkg/agent"
	"github.com/quizforge/quizforge/pkg/extract"
	"github.com/quizforge/quizforge/pkg/presign"
)

// Options carries the server's collaborators and tuning. Nil collaborators
// disable their route group so a partially configured deployment still
// serves the rest of the surface.
type Options struct {
	Jobs      *jobs.Service
	Presigner *presign.Presigner
	Extractor *extract.Extractor
	Invoker   agent.Invoker
	MockMode  bool

	Logger *zap.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// RateLimit is sustained requests/second; zero disables limiting.
	RateLimit float64
	RateBurst int
}

// Server is the HTTP front of the service.
type Server struct {
	host   string
	port   int
	router chi.Router
	http   *http.Server
	logger *zap.Logger
}

// New builds a Server with its full middleware chain and routes.
func New(host string, port int, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.CORS)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apperrors.WriteEnvelope(w, req, http.StatusNotFound,
			apperrors.CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		apperrors.WriteEnvelope(w, req, http.StatusMethodNotAllowed,
			apperrors.CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", handlers.Health)
	r.Get("/version", handlers.Version)

	if opts.Jobs != nil {
		jh := &handlers.JobHandlers{Svc: opts.Jobs, Logger: logger}
		r.Post("/jobs", jh.Submit)
		r.Get("/jobs", jh.Status)
		r.Get("/jobs/{id}", jh.Status)
	}

	if opts.Presigner != nil {
		uh := &handlers.UploadHandlers{Presigner: opts.Presigner}
		r.Post("/uploads", uh.Create)
	}

	if opts.Extractor != nil {
		eh := &handlers.ExtractHandlers{Extractor: opts.Extractor, Logger: logger}
		r.Post("/extract", eh.Run)
	}

	if opts.Invoker != nil || opts.MockMode {
		ih := &handlers.InvokeHandlers{Invoker: opts.Invoker, Mock: opts.MockMode, Logger: logger}
		r.Post("/invoke", ih.Invoke)
	}

	srv := &Server{
		host:   host,
		port:   port,
		router: r,
		logger: logger,
	}
	srv.http = &http.Server{
		Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:      r,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return srv
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening",
		zap.String("host", s.host),
		zap.Int("port", s.port))

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
