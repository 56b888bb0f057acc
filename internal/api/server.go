// Package api exposes the parse pipeline over HTTP.
//
// Routes:
//
//	POST /v1/parse              parse a notation, store it, return the molecule
//	GET  /v1/molecules/{id}     fetch a stored molecule (?format=dot|svg to render)
//	GET  /healthz               liveness and build information
//
// Errors are JSON objects {"code": ..., "message": ...}. Rejected notation is
// a 400, unknown ids a 404.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/pipeline"
	"github.com/matzehuels/molgraph/pkg/storage"
)

// Config holds server settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	// Defaults are applied to requests that leave the field unset.
	Defaults pipeline.Options
}

// Server handles API requests.
type Server struct {
	runner *pipeline.Runner
	store  storage.Store
	logger *log.Logger
	cfg    Config
}

// New creates a server. A nil store keeps records in memory.
func New(runner *pipeline.Runner, store storage.Store, logger *log.Logger, cfg Config) *Server {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 64 << 10
	}
	return &Server{runner: runner, store: store, logger: logger, cfg: cfg}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Get("/molecules/{id}", s.handleGetMolecule)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: errors.ErrCodeNotFound, Message: "no route for " + r.URL.Path})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
