// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Routing layout: everything except chat runs under a global request deadline.
Chat replies stream for longer than any sane deadline, so the chat routes are
mounted outside the timeout group and rely on the server write timeout instead.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/apnabasera/basera/internal/chat"
	"github.com/apnabasera/basera/internal/housing"
	"github.com/apnabasera/basera/internal/payment"
	"github.com/apnabasera/basera/internal/platform/config"
	"github.com/apnabasera/basera/internal/platform/constants"
	"github.com/apnabasera/basera/internal/platform/middleware"
	"github.com/apnabasera/basera/internal/users/auth"
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
	// Liveness is the root handler — always returns 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, federated sign-in, and password reset.
	Auth *auth.Handler

	// Housing handles the listing catalogue and admin management.
	Housing *housing.Handler

	// Payment handles Razorpay orders, verification, and refunds.
	Payment *payment.Handler

	// Chat handles the streaming assistant.
	Chat *chat.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The context bounds the lifetime of the rate limiter cleanup goroutines.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	resolver middleware.PrincipalResolver,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst, constants.RateLimitMessage))
	r.Use(chimw.CleanPath)

	// Routes that need a signed-in identity wrap themselves with this.
	authenticate := middleware.Authenticate(verifier, resolver)

	// # Infrastructure Endpoints
	// Unauthenticated probes for uptime checks and container orchestration.
	r.Get("/", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Standard request/response routes run under the global deadline.
	r.Group(func(timed chi.Router) {
		timed.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		// Credential endpoints carry a much stricter per-IP limiter.
		timed.Group(func(credential chi.Router) {
			credential.Use(middleware.RateLimit(ctx, constants.AuthRateLimitRPS, constants.AuthRateLimitBurst, constants.AuthRateLimitMessage))
			credential.Mount("/api/auth", h.Auth.Routes())
		})

		timed.Mount("/api/houses", h.Housing.Routes(authenticate))
		timed.Mount("/api/payment", h.Payment.Routes())
	})

	// Chat streams; no per-request deadline, bounded by the write timeout.
	r.Mount("/api/chat", h.Chat.Routes())

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
