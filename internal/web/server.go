// Package web provides the HTTP server, pages and JSON API of the admin
// dashboard.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/ipo"
	"github.com/JonMunkholm/ipoadmin/internal/web/middleware"
)

// Options configures the server's middleware and listener.
type Options struct {
	TrustedProxies []string
	EnableCSP      bool

	RateLimit          bool
	RequestsPerMinute  int
	RateBurst          int
	RequestTimeout     time.Duration
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	AuditRetentionDays int
}

func (o Options) withDefaults() Options {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 15 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 30 * time.Second
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = 60 * time.Second
	}
	if o.RequestsPerMinute <= 0 {
		o.RequestsPerMinute = middleware.DefaultRequestsPerMinute
	}
	if o.RateBurst <= 0 {
		o.RateBurst = 30
	}
	if o.AuditRetentionDays <= 0 {
		o.AuditRetentionDays = 90
	}
	return o
}

// Server is the HTTP server of the admin dashboard.
type Server struct {
	service *core.Service
	remote  *ipo.Client
	opts    Options
	router  *chi.Mux
	limiter *middleware.RateLimiter
	server  *http.Server
}

// NewServer wires the routes around service. remote serves the live IPO
// listing.
func NewServer(service *core.Service, remote *ipo.Client, opts Options) *Server {
	s := &Server{
		service: service,
		remote:  remote,
		opts:    opts.withDefaults(),
		router:  chi.NewRouter(),
	}
	if s.opts.RateLimit {
		s.limiter = middleware.NewRateLimiter(s.opts.RequestsPerMinute, s.opts.RateBurst)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.opts.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.opts.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.opts.EnableCSP))
	if s.limiter != nil {
		s.router.Use(s.limiter.Handler(s.rateLimited))
	}
	s.router.Use(requestMeta)
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/healthz", s.handleHealth)

	r.Get("/", s.handleDashboard)
	r.Get("/reports", s.handleReports)
	r.Get("/reports/export.csv", s.handleReportExport)
	r.Get("/settings", s.handleSettings)
	r.Post("/settings", s.handleSaveSettings)
	r.Get("/audit-log", s.handleAuditLog)
	r.Post("/audit-log/prune", s.handleAuditPrune)
	r.Get("/audit-log/export.csv", s.handleAuditExport)

	r.Get("/ipos/live", s.handleLiveIPOs)
	r.Post("/ipos/live/{id}/import", s.handleImportIPO)
	r.Post("/users/{id}/toggle", s.handleToggleUser)

	routes := s.resources()
	for _, res := range routes {
		res.mount(r)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/dashboard", s.handleAPIDashboard)
		api.Get("/reports", s.handleAPIReports)
		api.Get("/ipos/live", s.handleAPILiveIPOs)
		api.Get("/audit-log", s.handleAPIAuditLog)
		for _, res := range routes {
			api.Get("/"+res.key(), res.handleAPIList)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, fmt.Errorf("route %s: not found", r.URL.Path), http.StatusNotFound)
	})
}

// Start listens on addr until Shutdown is called. The rate limiter's idle
// sweep runs until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}
	if s.limiter != nil {
		go s.limiter.Run(ctx)
	}

	slog.Info("starting server", "addr", addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
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

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) rateLimited(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, errors.New("rate limit exceeded"), http.StatusTooManyRequests)
}
