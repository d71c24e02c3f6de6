// Package preview serves a built site locally and optionally rebuilds it
// when the projects tree changes.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server is the local preview HTTP server over a site root.
type Server struct {
	Root string
	Addr string

	httpServer *http.Server
}

// New returns a preview server for the site at root listening on addr.
func New(root, addr string) *Server {
	s := &Server{Root: root, Addr: addr}

	r := chi.NewRouter()
	r.Get("/healthcheck", func(w http.ResponseWriter, req *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	r.Get("/*", s.handleStatic)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Run starts the server and blocks until ctx is canceled or the listener
// fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Preview available", "addr", s.Addr, "url", "http://localhost"+s.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down preview server...")
		// Give the server 5 seconds to shut down gracefully
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "err", err)
			return err
		}
		slog.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	urlPath := strings.TrimPrefix(r.URL.Path, "/")

	// Prevent directory traversal attacks
	if strings.Contains(urlPath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	if urlPath == "" || strings.HasSuffix(urlPath, "/") {
		urlPath += "index.html"
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(urlPath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(urlPath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(urlPath, ".html"):
		w.Header().Set("Content-Type", "text/html")
	case strings.HasSuffix(urlPath, ".json"):
		w.Header().Set("Content-Type", "application/json")
	}

	http.ServeFile(w, r, filepath.Join(s.Root, filepath.FromSlash(urlPath)))
}
