package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireAdmin ensures the authenticated caller carries the admin flag.
// Authorization is binary: there are no roles beyond admin / not admin.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin, ok := GetIsAdmin(r.Context())
			if !ok {
				logger.Warn("Admin flag not found in context")
				RespondWithError(w, http.StatusUnauthorized, "access denied")
				return
			}

			if !isAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint")
				RespondWithError(w, http.StatusUnauthorized, "access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
