// Package http exposes the JSON API consumed by external collaborators.
// It is thin plumbing around the use case layer; no decision logic lives
// here.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/constructsafe/constructsafe/pkg/usecase"
	"github.com/constructsafe/constructsafe/pkg/utils/logging"
)

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	version string
}

type Option func(*Server)

// WithVersion sets the version string reported by the health endpoint
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

func New(uc *usecase.UseCases, opts ...Option) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:  r,
		uc:      uc,
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", s.createProject)
			r.Get("/", s.listProjects)
			r.Get("/{projectID}", s.getProject)
			r.Put("/{projectID}/status", s.updateProjectStatus)
		})

		r.Post("/analyze/text", s.analyzeText)

		r.Route("/risks", func(r chi.Router) {
			r.Get("/", s.listRisks)
			r.Get("/{riskID}", s.getRisk)
			r.Put("/{riskID}/status", s.updateRiskStatus)
		})
	})

	r.Get("/health", s.health)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
