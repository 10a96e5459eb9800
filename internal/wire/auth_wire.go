package wire

import (
	"artdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(r chi.Router, h *adaptor.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/token", h.Token)
	})
}
