package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iqbalrsyd/reog-commerce/internal/handlers"
	"github.com/iqbalrsyd/reog-commerce/internal/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Products *handlers.ProductHandler
	Events   *handlers.EventHandler
	Outlets  *handlers.OutletHandler
	Cart     *handlers.CartHandler
}

// NewRouter builds the API route tree. Catalog reads are public with an
// optional identity; cart and write endpoints require authentication.
func NewRouter(h Handlers, auth *middleware.Auth) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Get("/outlet/{outletId}", h.Products.ByOutlet)
			r.With(auth.Optional).Get("/{id}", h.Products.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Post("/", h.Products.Create)
				r.Put("/{id}", h.Products.Update)
				r.Delete("/{id}", h.Products.Delete)
				r.Post("/{id}/like", h.Products.ToggleLike)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Events.List)
			r.Get("/outlet/{outletId}", h.Events.ByOutlet)
			r.With(auth.Optional).Get("/{id}", h.Events.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Post("/", h.Events.Create)
				r.Put("/{id}", h.Events.Update)
				r.Delete("/{id}", h.Events.Delete)
			})
		})

		r.Route("/outlets", func(r chi.Router) {
			r.With(auth.Required).Get("/mine", h.Outlets.Mine)
			r.Get("/{id}", h.Outlets.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Post("/", h.Outlets.Create)
				r.Put("/{id}", h.Outlets.Update)
				r.Delete("/{id}", h.Outlets.Delete)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(auth.Required)
			r.Get("/", h.Cart.Get)
			r.Post("/add", h.Cart.AddProduct)
			r.Put("/update", h.Cart.UpdateProduct)
			r.Delete("/remove", h.Cart.RemoveProduct)
			r.Delete("/clear", h.Cart.Clear)
			r.Post("/tickets/add", h.Cart.AddTickets)
			r.Put("/tickets/update", h.Cart.UpdateTickets)
			r.Delete("/tickets/remove", h.Cart.RemoveTickets)
		})
	})

	return r
}
