/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. Recoverer:     Panic recovery (500 instead of crash)
  3. CORS:          Cross-origin requests for the SPA frontend
  4. RequestLogger: Structured request logging via httplog/slog
  5. Heartbeat:     Liveness probe on /ping

ROUTE GROUPS:
  /api/auth/*        Login
  /api/employees/*   Onboarding and balance lookup
  /api/leave/*       Leave request lifecycle

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/block8/leave-engine/config"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, cfg config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level: slog.LevelInfo,
	}))
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)

		r.Route("/employees", func(r chi.Router) {
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/balance", h.GetBalance)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Post("/", h.SubmitLeave)
			r.Get("/", h.ListLeaves)
			r.Get("/{id}", h.GetLeave)
			r.Put("/{id}/status", h.SetLeaveStatus)
		})
	})

	return r
}
