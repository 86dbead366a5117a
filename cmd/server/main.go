/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave management server: configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from environment (.env honored)
  2. Open SQLite store
  3. Wire notifier, auth, and lifecycle services
  4. Configure HTTP router
  5. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/block8/leave-engine/api"
	"github.com/block8/leave-engine/auth"
	"github.com/block8/leave-engine/config"
	"github.com/block8/leave-engine/email"
	"github.com/block8/leave-engine/leave"
	"github.com/block8/leave-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("initializing database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	notifier := email.New(cfg)
	service := leave.NewService(store, store.Leaves(), notifier, logger)
	service.Entitlement = decimal.NewFromInt(int64(cfg.Entitlement))

	authSvc := auth.NewService(store, []byte(cfg.JWTSecret), cfg.TokenTTL)

	handler := api.NewHandler(service, authSvc, logger)
	router := api.NewRouter(handler, cfg, logger)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	return slog.New(handler).With(
		slog.String("app", "leave-engine"),
		slog.String("env", cfg.Env),
	)
}
