package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func signToken(t testing.TB, secret string, userID uuid.UUID, isAdmin bool, expiry time.Duration) string {
	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"is_admin": isAdmin,
		"exp":      time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return tokenString
}

// Feature: storefront, Property 43: Protected endpoints reject missing tokens
// Validates: Requirements 17.1
func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests without the token header are rejected with 401", prop.ForAll(
		func(pathSuffix string, method string) bool {
			logger, _ := zap.NewDevelopment()
			middleware := AuthMiddleware("test-secret", logger)

			// Create a test handler
			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			// Ensure path starts with /
			path := "/" + pathSuffix
			if path == "/" {
				path = "/test"
			}

			// Create request without the token header
			req := httptest.NewRequest(method, path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf("GET", "POST", "PUT", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: storefront, Property 44: Expired tokens are rejected
// Validates: Requirements 17.2
func TestExpiredTokenRejected(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	secret := "test-secret"
	middleware := AuthMiddleware(secret, logger)

	tokenString := signToken(t, secret, uuid.New(), false, -1*time.Hour)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(TokenHeader, tokenString)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	// Expired tokens are a 400, not a 401; only a missing token is 401
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for expired token, got %d", w.Code)
	}
}

// Feature: storefront, Property 45: Valid tokens allow processing
// Validates: Requirements 17.3
func TestProperty_ValidTokensAllowProcessing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid tokens put the caller identity into context", prop.ForAll(
		func(isAdmin bool) bool {
			logger, _ := zap.NewDevelopment()
			secret := "test-secret"
			middleware := AuthMiddleware(secret, logger)

			userID := uuid.New()
			tokenString := signToken(t, secret, userID, isAdmin, time.Hour)

			// Track if handler was called
			handlerCalled := false

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true

				ctxUserID, ok1 := GetUserID(r.Context())
				ctxIsAdmin, ok2 := GetIsAdmin(r.Context())

				if !ok1 || !ok2 {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				if ctxUserID != userID || ctxIsAdmin != isAdmin {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(TokenHeader, tokenString)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return handlerCalled && w.Code == http.StatusOK
		},
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_InvalidTokenFormatRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("malformed tokens are rejected with 400", prop.ForAll(
		func(invalidToken string) bool {
			if invalidToken == "" {
				// Empty header means missing token, covered elsewhere
				return true
			}

			logger, _ := zap.NewDevelopment()
			middleware := AuthMiddleware("test-secret", logger)

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(TokenHeader, invalidToken)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusBadRequest
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestTokenSignedWithWrongSecretRejected(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	middleware := AuthMiddleware("right-secret", logger)

	tokenString := signToken(t, "wrong-secret", uuid.New(), false, time.Hour)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(TokenHeader, tokenString)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad signature, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	secret := "test-secret"
	auth := AuthMiddleware(secret, logger)
	admin := RequireAdmin(logger)

	handler := auth(admin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		name     string
		isAdmin  bool
		wantCode int
	}{
		{"admin passes", true, http.StatusOK},
		{"non-admin rejected", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString := signToken(t, secret, uuid.New(), tt.isAdmin, time.Hour)

			req := httptest.NewRequest("PUT", "/api/admin/some-id", nil)
			req.Header.Set(TokenHeader, tokenString)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}
