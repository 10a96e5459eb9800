package middleware

import (
	"net/http"
	"strings"

	"artdb/internal/authz"
	"artdb/internal/data/entity"
	"artdb/internal/data/repository"
	"artdb/pkg/token"
	"artdb/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate validates the bearer access token and puts the principal on
// the request context. Routes without it are anonymous/read-only.
func Authenticate(tokens *token.Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.ParseAccessToken(parts[1])
			if err != nil {
				logger.Warn("Rejected access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				logger.Warn("Access token with malformed subject", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			principal := authz.Principal{
				UserID:   userID,
				Username: claims.Username,
				Role:     entity.UserRole(claims.Role),
			}

			next.ServeHTTP(w, r.WithContext(authz.WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin guards admin-only routes. The role is re-read from storage so
// a demoted admin loses access before the token expires.
func RequireAdmin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := authz.FromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), principal.UserID)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", principal.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || user.Role != entity.RoleAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", principal.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
