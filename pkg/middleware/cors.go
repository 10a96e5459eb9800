package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser clients from any origin; credentials stay disabled
// because auth is a bearer header, not a cookie.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
}
