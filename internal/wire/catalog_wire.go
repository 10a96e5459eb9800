package wire

import (
	"net/http"

	"artdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func CatalogRoutes(r chi.Router, h *adaptor.Handler, authenticated, adminOnly func(http.Handler) http.Handler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.With(authenticated, adminOnly).Post("/", h.CreateCategory)
		r.With(authenticated, adminOnly).Delete("/{slug}", h.DeleteCategory)
	})

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", h.ListGenres)
		r.With(authenticated, adminOnly).Post("/", h.CreateGenre)
		r.With(authenticated, adminOnly).Delete("/{slug}", h.DeleteGenre)
	})
}
