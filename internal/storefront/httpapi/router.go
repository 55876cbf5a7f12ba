package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(httpx.AccessLog(h.log))
	r.Use(httpx.Recover(h.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{common.RequestIDHeaderName, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", h.healthcheck)
		r.Get("/config", h.publicConfig)
		r.Get("/search", h.searchProducts)
		r.Get("/products/{handle}", h.getProduct)
		r.With(h.limiter.Middleware(h.log)).Get("/news", h.listNews)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getActiveCart)
			r.Post("/", h.createCart)
			r.Post("/line-items", h.addToActiveCart)

			r.Route("/{cartId}", func(r chi.Router) {
				r.Get("/", h.getCart)
				r.Post("/line-items", h.addLineItem)
				r.Post("/line-items/{lineId}", h.updateLineItem)
				r.Delete("/line-items/{lineId}", h.deleteLineItem)
				r.Post("/email", h.updateEmail)
				r.Get("/shipping-options", h.listShippingOptions)
				r.Post("/shipping-methods", h.addShippingMethod)
				r.Post("/taxes", h.calculateTaxes)
				r.Post("/complete", h.completeCart)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(r.Context(), w, h.log, common.ErrorNotFound)
	})
	return r
}
