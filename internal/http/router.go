package http

import (
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Sessions    *session.Manager
	Cart        *cart.Manager
	Catalog     *catalog.Service
	Coordinator *checkout.Coordinator
	Orders      AdminOrdersAPI
	Timeout     time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	sessionHandler := NewSessionHandler(deps.Sessions)
	productHandler := NewProductHandler(deps.Catalog)
	cartHandler := NewCartHandler(deps.Cart, deps.Catalog)
	checkoutHandler := NewCheckoutHandler(deps.Coordinator, deps.Cart)
	ordersHandler := NewOrdersHandler(deps.Orders)
	adminHandler := NewAdminHandler(deps.Catalog, deps.Orders)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.Timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Current)
			r.Post("/", sessionHandler.Login)
			r.Delete("/", sessionHandler.Logout)
			r.Post("/register", sessionHandler.Register)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireSession(deps.Sessions))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{id}", cartHandler.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", checkoutHandler.Stage)
				r.Post("/", checkoutHandler.Submit)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordersHandler.List)
				r.Get("/{id}", ordersHandler.Get)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin(deps.Sessions))

			r.Get("/dashboard", adminHandler.Dashboard)
			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{id}", adminHandler.UpdateProduct)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)
			r.Put("/orders/{id}/status", adminHandler.UpdateOrderStatus)
		})
	})

	return r
}
