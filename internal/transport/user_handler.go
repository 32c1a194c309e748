package transport

import (
	"net/http"

	"souq-api/internal/middleware"
	"souq-api/internal/repository"
	"souq-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,username,min=4,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned from registration and login
type AuthResponse struct {
	Token    string `json:"token"`
	IsAdmin  bool   `json:"isAdmin"`
	UserName string `json:"userName"`
}

// UserHandler handles HTTP requests for registration and login
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers user, auth and admin routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware, rateLimiter func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if rateLimiter != nil {
			r.Use(rateLimiter)
		}
		r.Post("/api/user", h.Register)
		r.Post("/api/auth", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Put("/api/admin/{id}", h.PromoteToAdmin)
	})
}

// Register handles user registration. A new account always starts
// without the admin flag and with an empty cart.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == repository.ErrUserAlreadyExists {
			middleware.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}

		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "User registration failed")
		return
	}

	h.logger.Info("User registered successfully", zap.String("user_id", user.ID.String()))

	w.Header().Set(middleware.TokenHeader, token)
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		Token:    token,
		IsAdmin:  user.IsAdmin,
		UserName: user.Name,
	})
}

// Login handles user authentication
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusBadRequest, "email or password incorrect")
			return
		}

		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "error while logging in")
		return
	}

	h.logger.Info("User logged in successfully", zap.String("user_id", user.ID.String()))

	w.Header().Set(middleware.TokenHeader, token)
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		Token:    token,
		IsAdmin:  user.IsAdmin,
		UserName: user.Name,
	})
}

// PromoteToAdmin sets the admin flag on the target user
func (h *UserHandler) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid ID format")
		return
	}

	user, err := h.userService.PromoteToAdmin(r.Context(), userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}

		h.logger.Error("Promotion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to promote user")
		return
	}

	h.logger.Info("User promoted to admin", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": user.Name + "'s role is set to admin",
	})
}
