// Package server implements the viewdock HTTP API.
//
// The API lays out scripts statelessly and also hosts live workspaces as
// server-side sessions that clients grow one split at a time:
//
//	POST   /v1/layout                         lay out a script, ?format= (default json)
//	POST   /v1/workspaces                     create a workspace session
//	GET    /v1/workspaces/{id}                script and layout of a session
//	POST   /v1/workspaces/{id}/split-top      fill an empty root side or deepen its left slot
//	POST   /v1/workspaces/{id}/split          split the view with a given handle
//	GET    /v1/workspaces/{id}/render/{format}
//	GET    /v1/workspaces/{id}/script/{format}  recorded ops as json, toml or yaml
//	DELETE /v1/workspaces/{id}
//	GET    /healthz
//	GET    /version
//
// Errors are returned as {"error": {"code": "...", "message": "..."}} with
// the HTTP status from [StatusFor].
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/pipeline"
	"github.com/matzehuels/viewdock/pkg/session"
)

const (
	// maxBodySize bounds request bodies. Scripts are small.
	maxBodySize = 1 << 20

	// cleanupInterval is how often expired sessions are purged.
	cleanupInterval = 10 * time.Minute

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address used by ListenAndServe.
	Addr string

	// Store holds workspace sessions. Required.
	Store session.Store

	// Runner renders layouts. A runner without a cache is used when nil.
	Runner *pipeline.Runner

	// SessionTTL is the lifetime of a session, renewed on every update.
	SessionTTL time.Duration

	// Bounds are used for new workspaces that do not name their own.
	Bounds dock.Rect

	// ScriptsDir, when set, lets clients start a workspace from a script
	// stored under this directory.
	ScriptsDir string

	Logger *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
	locks  *sessionLocks
}

// New creates a server. Defaults are applied to zero fields of cfg.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = session.DefaultTTL
	}
	if cfg.Bounds.Empty() {
		cfg.Bounds = dock.NewRect(0, 0, 1024, 768)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{cfg: cfg, locks: newSessionLocks()}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are purged in the background.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("Listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.cfg.Logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) cleanupLoop(ctx context.Context) {
	t := time.NewTicker(cleanupInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.cfg.Store.Cleanup(ctx); err != nil {
				s.cfg.Logger.Warn("Session cleanup failed", "err", err)
			}
		}
	}
}
