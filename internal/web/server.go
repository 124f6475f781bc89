// Package web provides the HTTP surface for the timeline feed: the stored
// entries, the latest processing result and its text report, and operational
// endpoints for triggering a refresh and adjusting validation settings.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sheetfeed/internal/ingest"
	"sheetfeed/internal/logging"
	"sheetfeed/internal/store"
)

// EntryReader is the read side of the store the server needs.
type EntryReader interface {
	Entries(ctx context.Context, onlyValid bool) ([]store.Entry, error)
	LastLoad(ctx context.Context) (store.LoadInfo, bool, error)
	Ping(ctx context.Context) error
}

// Server is the HTTP server for the timeline feed.
type Server struct {
	service *ingest.Service
	entries EntryReader
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a Server. entries may be nil when running without a
// database; the timeline endpoint then serves from the cached result.
func NewServer(service *ingest.Service, entries EntryReader) *Server {
	s := &Server{
		service: service,
		entries: entries,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/timeline", s.handleTimeline)
		r.Get("/result", s.handleResult)
		r.Get("/report", s.handleReport)
		r.Post("/refresh", s.handleRefresh)
		r.Patch("/config", s.handleConfigUpdate)
		r.Get("/fields", s.handleFields)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string, readTimeout, writeTimeout, idleTimeout time.Duration) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	slog.Info("server listening", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds baseline security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeError writes a JSON error response and logs the failure with the
// request ID for correlation.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", message,
	)
	writeJSON(w, status, map[string]string{"error": message})
}
