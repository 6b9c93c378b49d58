// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

The server exposes two surfaces: the page routes of the dashboard (guarded
with redirects, per the route table in routes.go) and the JSON API under
/api/v1 (guarded with status codes).
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/grossstore/grossstore/internal/auth"
	"github.com/grossstore/grossstore/internal/inventory"
	"github.com/grossstore/grossstore/internal/platform/config"
	"github.com/grossstore/grossstore/internal/platform/constants"
	"github.com/grossstore/grossstore/internal/platform/middleware"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, logout, social).
	Auth *auth.Handler

	// Inventory handles the product catalog and the analytics surface.
	Inventory *inventory.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	restorer middleware.SessionRestorer,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. ResolveSession runs
	// after Authenticate so verified bearer claims short-circuit the
	// session-backend round trip.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.ResolveSession(restorer))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Page Routes
	// Every table entry is admitted through the access gate; the gate's
	// decision maps to redirects on this surface.
	for _, route := range PageRoutes() {
		r.With(middleware.Guard(route.Requirement)).Get(route.Path, pageHandler(route))
	}

	// The root path redirects unconditionally, before any session check.
	r.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, constants.PathLogin, http.StatusFound)
	})

	// Both providers resolve to the same completion handling; the provider
	// is inferred from the path.
	r.Get("/auth/{provider}/callback", h.Auth.SocialCallback)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(authenticated chi.Router) {
			authenticated.Use(middleware.GuardAPI(sec.RequireAuthenticated))
			authenticated.Mount("/products", h.Inventory.ProductRoutes())
		})

		api.Group(func(manager chi.Router) {
			manager.Use(middleware.GuardAPI(sec.RequireManager))
			manager.Mount("/", h.Inventory.AnalyticsRoutes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Router exposes the underlying handler, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
