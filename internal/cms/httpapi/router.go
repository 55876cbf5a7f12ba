package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Router wires every CMS route behind the shared middleware stack.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(httpx.AccessLog(h.log))
	r.Use(httpx.Recover(h.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", common.AuthorizationHeaderName, common.PublishableKeyHeaderName},
		ExposedHeaders: []string{common.RequestIDHeaderName},
		MaxAge:         300,
	}))

	r.Get("/api/health", h.health)
	r.Get("/key-exchange", h.keyExchange)

	r.Route("/store", func(r chi.Router) {
		r.Get("/news", h.listPublicNews)
		r.Get("/news/feed.xml", h.newsFeed)
		r.Get("/news/{slug}", h.getPublicNews)
		r.Get("/discography", h.listPublicDiscography)
		r.Get("/discography/{slug}", h.getPublicDiscography)
		r.Post("/feed-subscriptions", h.subscribe)
		r.Delete("/feed-subscriptions/{token}", h.unsubscribe)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/auth/token", h.login)
		r.Post("/auth/refresh", h.refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.requireOperator)

			r.Get("/news", h.listNews)
			r.Post("/news", h.createNews)
			r.Get("/news/{id}", h.getNews)
			r.Put("/news/{id}", h.updateNews)
			r.Delete("/news/{id}", h.deleteNews)
			r.Post("/news/{id}/publish", h.publishNews)
			r.Post("/news/{id}/archive", h.archiveNews)

			r.Get("/discography", h.listDiscography)
			r.Post("/discography", h.createDiscography)
			r.Get("/discography/{id}", h.getDiscography)
			r.Put("/discography/{id}", h.updateDiscography)
			r.Delete("/discography/{id}", h.deleteDiscography)

			r.Post("/uploads", h.createUpload)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(r.Context(), w, h.log, common.ErrorNotFound)
	})
	return r
}
