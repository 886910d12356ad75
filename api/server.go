/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the SPA front end

SECURITY NOTE:
  No authentication. The server binds to the device the coach holds;
  the entitlement ledger is local by design.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Live session routes
		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Put("/", h.UpdateDraft)
			r.Post("/stats", h.RecordStat)
			r.Post("/undo", h.Undo)
			r.Post("/reset", h.ResetCounts)
			r.Post("/new", h.StartNewDraft)
			r.Post("/finalize", h.Finalize)
		})

		// Finalized game routes
		r.Route("/games", func(r chi.Router) {
			r.Get("/", h.ListGames)
			r.Delete("/{id}", h.DeleteGame)
			r.Get("/{id}/share", h.ShareGame)
		})

		// Season queries
		r.Get("/season", h.GetSeason)
		r.Get("/players", h.ListPlayers)

		// Team scopes
		r.Route("/scopes", func(r chi.Router) {
			r.Get("/", h.ListScopes)
			r.Post("/", h.CreateScope)
		})

		// Billing routes
		r.Route("/billing", func(r chi.Router) {
			r.Get("/", h.GetBilling)
			r.Get("/plans", h.ListPlans)
			r.Post("/checkout", h.Checkout)
			r.Post("/redeem", h.Redeem)
		})
	})

	return r
}
