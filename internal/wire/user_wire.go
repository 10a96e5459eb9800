package wire

import (
	"net/http"

	"artdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(r chi.Router, h *adaptor.Handler, authenticated, adminOnly func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		// "me" is reserved and must be matched before the username wildcard.
		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/me", h.Me)
			r.Patch("/me", h.UpdateMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Get("/{username}", h.GetUser)
			r.Patch("/{username}", h.UpdateUser)
			r.Delete("/{username}", h.DeleteUser)
		})
	})
}
