package router

import (
	"net/http"

	"hestia-ledger-api/internal/handler"
	"hestia-ledger-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	AuthHandler       *handler.AuthHandler
	ProtocolHandler   *handler.ProtocolHandler
	RestaurantHandler *handler.RestaurantHandler
	InventoryHandler  *handler.InventoryHandler
	MenuHandler       *handler.MenuHandler
	OrderHandler      *handler.OrderHandler
	AuthMiddleware    func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Token"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health check endpoints
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		// Token issuance is the only unauthenticated auth endpoint
		if cfg.AuthHandler != nil {
			r.Post("/auth/token", cfg.AuthHandler.GenerateToken)
		}

		// AUTHENTICATED routes
		r.Group(func(r chi.Router) {
			if cfg.AuthMiddleware != nil {
				r.Use(cfg.AuthMiddleware)
			}

			if cfg.AuthHandler != nil {
				r.Post("/auth/revoke", cfg.AuthHandler.RevokeToken)
				r.Post("/auth/refresh", cfg.AuthHandler.RefreshToken)
			}

			if cfg.ProtocolHandler != nil {
				r.Route("/protocol", func(r chi.Router) {
					r.Get("/", cfg.ProtocolHandler.Get)
					r.Post("/init", cfg.ProtocolHandler.Init)
					r.Post("/lock", cfg.ProtocolHandler.ToggleLock)
					r.Post("/admins", cfg.ProtocolHandler.AddAdmin)
					r.Delete("/admins/{identity}", cfg.ProtocolHandler.RemoveAdmin)
				})
			}

			if cfg.RestaurantHandler != nil {
				r.Post("/restaurants", cfg.RestaurantHandler.Create)
				r.Route("/restaurants/{address}", func(r chi.Router) {
					r.Get("/", cfg.RestaurantHandler.Get)
					r.Post("/employees", cfg.RestaurantHandler.AddEmployee)
					r.Put("/employees/{wallet}", cfg.RestaurantHandler.PromoteEmployee)
					r.Delete("/employees/{wallet}", cfg.RestaurantHandler.RemoveEmployee)

					if cfg.InventoryHandler != nil {
						r.Put("/inventory/{sku}", cfg.InventoryHandler.Upsert)
						r.Delete("/inventory/{sku}", cfg.InventoryHandler.Remove)
						r.Get("/inventory/{sku}", cfg.InventoryHandler.Get)
					}

					if cfg.MenuHandler != nil {
						r.Post("/menu", cfg.MenuHandler.Add)
						r.Put("/menu/{sku}", cfg.MenuHandler.Update)
						r.Post("/menu/{sku}/toggle", cfg.MenuHandler.Toggle)
						r.Get("/menu/{sku}", cfg.MenuHandler.Get)
					}

					if cfg.OrderHandler != nil {
						r.Post("/orders", cfg.OrderHandler.Place)
						r.Put("/orders/{order_id}", cfg.OrderHandler.Update)
						r.Post("/orders/{order_id}/cancel", cfg.OrderHandler.Cancel)
						r.Get("/orders/{order_id}", cfg.OrderHandler.Get)
					}
				})
			}
		})
	})

	return r
}
