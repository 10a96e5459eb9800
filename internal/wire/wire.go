// Package wire assembles the application: repositories over the pool,
// services over repositories, handlers over services, and the chi router on
// top.
package wire

import (
	"net/http"
	"time"

	"artdb/internal/adaptor"
	"artdb/internal/data/repository"
	"artdb/internal/usecase"
	"artdb/pkg/database"
	"artdb/pkg/mailer"
	"artdb/pkg/middleware"
	"artdb/pkg/token"
	"artdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func Setup(config *utils.Config, db database.PgxIface, log *zap.Logger) http.Handler {
	tokens := token.NewService(
		config.JWT.Secret,
		time.Duration(config.JWT.ExpiryMinutes)*time.Minute,
		time.Duration(config.Confirmation.ExpiryMinutes)*time.Minute,
		config.Confirmation.Length,
	)

	repo := repository.NewRepository(db, log)
	mail := mailer.New(config.Email, log)
	service := usecase.NewService(repo, config, tokens, mail, log)
	handler := adaptor.NewHandler(service, log)

	authenticated := middleware.Authenticate(tokens, log)
	adminOnly := middleware.RequireAdmin(repo.User, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS())

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context()); err != nil {
			utils.ResponseInternalError(w, "Database unreachable")
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.Route("/api/v1", func(api chi.Router) {
		AuthRoutes(api, handler)
		UserRoutes(api, handler, authenticated, adminOnly)
		CatalogRoutes(api, handler, authenticated, adminOnly)
		TitleRoutes(api, handler, authenticated, adminOnly)
	})

	return r
}
