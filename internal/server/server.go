// Package server exposes the layout pipeline and snapshot store over HTTP.
//
// Routes:
//
//	GET    /healthz                   - liveness probe with build info
//	POST   /v1/layout                 - compute a layout for inline members
//	POST   /v1/snapshots              - persist a member snapshot
//	GET    /v1/snapshots              - list stored snapshots
//	GET    /v1/snapshots/{id}         - fetch a stored snapshot
//	DELETE /v1/snapshots/{id}         - delete a stored snapshot
//	GET    /v1/snapshots/{id}/layout  - compute a layout for a stored snapshot
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/treekit/lineage/pkg/pipeline"
	"github.com/treekit/lineage/pkg/store"
)

// Server wires the pipeline runner and snapshot store into an HTTP handler.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. The runner must be non-nil; the store may be nil,
// in which case the snapshot routes respond with 503.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/", s.handleCreateSnapshot)
			r.Get("/", s.handleListSnapshots)
			r.Get("/{id}", s.handleGetSnapshot)
			r.Delete("/{id}", s.handleDeleteSnapshot)
			r.Get("/{id}/layout", s.handleSnapshotLayout)
		})
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully with a 10 second drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
