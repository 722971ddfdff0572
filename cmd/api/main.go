// Copyright (c) 2026 ApnaBasera. All rights reserved.

// Command api is the entry point for the ApnaBasera HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Dial the Gemini API for the assistant.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/apnabasera/basera/internal/api"
	"github.com/apnabasera/basera/internal/chat"
	"github.com/apnabasera/basera/internal/housing"
	"github.com/apnabasera/basera/internal/payment"
	"github.com/apnabasera/basera/internal/platform/config"
	"github.com/apnabasera/basera/internal/platform/constants"
	"github.com/apnabasera/basera/internal/platform/identity"
	"github.com/apnabasera/basera/internal/platform/mail"
	"github.com/apnabasera/basera/internal/platform/migration"
	pgstore "github.com/apnabasera/basera/internal/platform/postgres"
	redisstore "github.com/apnabasera/basera/internal/platform/redis"
	"github.com/apnabasera/basera/internal/platform/sec"
	"github.com/apnabasera/basera/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[ApnaBasera] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env file is optional; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context bounds background goroutines (rate limiter cleanup).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & External Services ──────────────────────────────────
	tokenService := sec.NewTokenService(cfg.JWTSecret)
	googleVerifier := identity.NewGoogleVerifier(cfg.GoogleClientID)
	mailer := mail.NewLogMailer(log)

	streamer, err := chat.NewGeminiStreamer(startupCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
	must(log, err, "initialize gemini client")
	defer func() {
		if cerr := streamer.Close(); cerr != nil {
			log.Error("gemini close error", slog.Any("error", cerr))
		}
	}()

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService, googleVerifier, mailer,
		auth.AdminCredentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
		cfg.FrontendURL,
	)
	authHandler := auth.NewHandler(authService)

	houseRepository := housing.NewHouseRepository(pool)
	housingHandler := housing.NewHandler(housing.NewService(houseRepository))

	paymentGateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentHandler := payment.NewHandler(payment.NewService(paymentGateway, cfg.RazorpayKeyID, cfg.RazorpayKeySecret))

	historyRepository := chat.NewHistoryRepository(rdb)
	chatHandler := chat.NewHandler(chat.NewService(streamer, historyRepository))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Housing:   housingHandler,
		Payment:   paymentHandler,
		Chat:      chatHandler,
	}

	server := api.NewServer(appCtx, cfg, log, tokenService, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
