package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/steviee/factorio-dash/internal/dashboard"
)

// Submitter runs console commands submitted through the form.
type Submitter interface {
	Submit(ctx context.Context, command string) bool
}

// ServerOptions configures the dashboard server.
type ServerOptions struct {
	Backend string
	Refresh time.Duration
	Logger  *slog.Logger
	// Allow limits who may POST. Nil allows everyone.
	Allow *AllowList
}

// Server serves the HTML dashboard from a page kept current by the pollers.
type Server struct {
	page      *dashboard.Page
	submitter Submitter
	backend   string
	refresh   time.Duration
	logger    *slog.Logger
	allow     *AllowList
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a dashboard server.
func NewServer(page *dashboard.Page, submitter Submitter, opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Refresh <= 0 {
		opts.Refresh = dashboard.DefaultPlayersInterval
	}

	s := &Server{
		page:      page,
		submitter: submitter,
		backend:   opts.Backend,
		refresh:   opts.Refresh,
		logger:    logger,
		allow:     opts.Allow,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /regions/{id}", s.handleRegion)
	s.mux.HandleFunc("POST /rcon-form", s.handleCommand)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.handler = s.limitHosts(s.mux)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down dashboard server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := newPageView(s.page.Snapshot(), s.backend, s.refresh)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, view); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	id := dashboard.RegionID(r.PathValue("id"))
	if !knownRegion(id) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(s.page.Content(id)))
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// A client that goes away must not cancel a command the server already got
	if s.submitter.Submit(context.WithoutCancel(r.Context()), r.PostFormValue("command")) {
		s.logger.Debug("command submitted from web form", "remote", r.RemoteAddr)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func knownRegion(id dashboard.RegionID) bool {
	for _, known := range dashboard.Regions {
		if id == known {
			return true
		}
	}
	return false
}
