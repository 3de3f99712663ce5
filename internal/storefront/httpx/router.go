package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront/internal/storefront/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/home", handler.Home)
		r.Get("/category/{category}", handler.Category)
		r.Get("/search", handler.Search)
		r.Get("/product/{product_id}", handler.Product)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Post("/", handler.AddToCart)
		r.Delete("/", handler.RemoveItem)
		r.Patch("/increment", handler.IncrementQuantity)
		r.Patch("/decrement", handler.DecrementQuantity)
		r.Get("/{username}", handler.ListCart)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", handler.PlaceOrder)
		r.Get("/batches/{batch_id}/log", handler.PlacementLog)
		r.Get("/{username}", handler.ListOrders)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", handler.Login)
		r.Post("/signup", handler.Signup)
	})
	return r
}
