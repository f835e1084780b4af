package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	handlers "github.com/rogerio-castellano/inventory-audit/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/inventory-audit/docs"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	// Public auth surface, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/auth/token", handlers.LoginHandler)
		r.Post("/auth/token/refresh", handlers.RefreshTokenHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.GetItemsHandler)
			r.Post("/", handlers.CreateItemHandler)
			r.Post("/import", handlers.ImportItemsHandler)
			r.Get("/low_stock", handlers.LowStockHandler)
			r.Get("/audit", handlers.AuditHandler)
			r.Get("/{id}", handlers.GetItemByIDHandler)
			r.Put("/{id}", handlers.UpdateItemHandler)
			r.Delete("/{id}", handlers.DeleteItemHandler)
			r.Get("/{id}/history", handlers.ItemHistoryHandler)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handlers.GetCategoriesHandler)
			r.Post("/", handlers.CreateCategoryHandler)
			r.Get("/{id}", handlers.GetCategoryByIDHandler)
			r.Put("/{id}", handlers.UpdateCategoryHandler)
			r.Delete("/{id}", handlers.DeleteCategoryHandler)
		})

		r.Route("/changes", func(r chi.Router) {
			r.Get("/", handlers.GetChangeLogsHandler)
			r.Get("/export", handlers.ExportChangeLogsHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", handlers.GetUsersHandler)
			r.Get("/{id}", handlers.GetUserByIDHandler)
			r.Delete("/{id}", handlers.DeleteUserHandler)
		})
		r.Post("/admin/users", handlers.RegisterAsAdminHandler)

		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	})

	return r
}
