package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	// TokenHeader is the custom header carrying the bearer token. The
	// clients of this API send x-auth-token, not Authorization.
	TokenHeader = "x-auth-token"

	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
)

// AuthMiddleware validates the x-auth-token JWT and puts the caller's
// user id and admin flag into the request context. A missing token is
// a 401; a malformed or expired token is a 400, matching the error
// taxonomy of the rest of the API.
func AuthMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				logger.Debug("Missing auth token header")
				RespondWithError(w, http.StatusUnauthorized, "access denied")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					RespondWithError(w, http.StatusBadRequest, "token expired")
				} else {
					RespondWithError(w, http.StatusBadRequest, "invalid token")
				}
				return
			}

			if !token.Valid {
				logger.Debug("Invalid token")
				RespondWithError(w, http.StatusBadRequest, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Error("Failed to extract claims from token")
				RespondWithError(w, http.StatusBadRequest, "invalid token claims")
				return
			}

			rawUserID, ok := claims["user_id"].(string)
			if !ok {
				logger.Error("Missing user_id in token claims")
				RespondWithError(w, http.StatusBadRequest, "invalid token claims")
				return
			}

			userID, err := uuid.Parse(rawUserID)
			if err != nil {
				logger.Error("Malformed user_id in token claims", zap.Error(err))
				RespondWithError(w, http.StatusBadRequest, "invalid token claims")
				return
			}

			// JSON numbers and booleans both survive the round trip as
			// interface{}; the claim is written as a bool.
			isAdmin, ok := claims["is_admin"].(bool)
			if !ok {
				logger.Error("Missing is_admin in token claims")
				RespondWithError(w, http.StatusBadRequest, "invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, IsAdminKey, isAdmin)

			logger.Debug("User authenticated",
				zap.String("user_id", userID.String()),
				zap.Bool("is_admin", isAdmin),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the caller's user id from the request context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetIsAdmin extracts the caller's admin flag from the request context
func GetIsAdmin(ctx context.Context) (bool, bool) {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return isAdmin, ok
}
