package wire

import (
	"net/http"

	"artdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func TitleRoutes(r chi.Router, h *adaptor.Handler, authenticated, adminOnly func(http.Handler) http.Handler) {
	r.Route("/titles", func(r chi.Router) {
		r.Get("/", h.ListTitles)
		r.With(authenticated, adminOnly).Post("/", h.CreateTitle)

		r.Route("/{title_id}", func(r chi.Router) {
			r.Get("/", h.GetTitle)
			r.With(authenticated, adminOnly).Patch("/", h.UpdateTitle)
			r.With(authenticated, adminOnly).Delete("/", h.DeleteTitle)

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", h.ListReviews)
				r.With(authenticated).Post("/", h.CreateReview)

				r.Route("/{review_id}", func(r chi.Router) {
					r.Get("/", h.GetReview)
					r.With(authenticated).Patch("/", h.UpdateReview)
					r.With(authenticated).Delete("/", h.DeleteReview)

					r.Route("/comments", func(r chi.Router) {
						r.Get("/", h.ListComments)
						r.With(authenticated).Post("/", h.CreateComment)

						r.Route("/{comment_id}", func(r chi.Router) {
							r.Get("/", h.GetComment)
							r.With(authenticated).Patch("/", h.UpdateComment)
							r.With(authenticated).Delete("/", h.DeleteComment)
						})
					})
				})
			})
		})
	})
}
