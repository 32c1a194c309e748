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

// CartItemRequest carries the product and quantity for cart writes
type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// CartHandler handles HTTP requests for the caller's cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers cart routes under /api/cart. All of them
// require a token.
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.ListItems)
		r.Post("/", h.AddItem)
		r.Patch("/", h.UpdateItemQuantity)
		r.Delete("/", h.Clear)
		r.Delete("/{prodId}", h.RemoveItem)
	})
}

// ListItems returns the caller's cart lines with localized products
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	lang := middleware.GetLang(r.Context())

	items, err := h.cartService.ListItems(r.Context(), userID, lang)
	if err != nil {
		h.logger.Error("Failed to list cart items", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to fetch cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// AddItem inserts a new line into the caller's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	var req CartItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Cart item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.AddItem(r.Context(), userID, req.ProductID, req.Quantity); err != nil {
		switch err {
		case repository.ErrCartItemExists:
			middleware.RespondWithError(w, http.StatusBadRequest, "product already in cart")
		case repository.ErrCartNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
		default:
			h.logger.Error("Failed to add cart item", zap.Error(err), zap.String("user_id", userID.String()))
			middleware.RespondWithError(w, http.StatusBadRequest, "failed to add product to cart")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product added to cart"})
}

// UpdateItemQuantity changes the quantity of an existing line
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	var req CartItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Cart item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.UpdateItemQuantity(r.Context(), userID, req.ProductID, req.Quantity); err != nil {
		switch err {
		case repository.ErrCartItemNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "product not in cart")
		case repository.ErrCartNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
		default:
			h.logger.Error("Failed to update cart item", zap.Error(err), zap.String("user_id", userID.String()))
			middleware.RespondWithError(w, http.StatusBadRequest, "failed to update cart")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart updated"})
}

// RemoveItem deletes one line from the caller's cart. Removing an
// absent line still succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "prodId"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid ID format")
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), userID, productID); err != nil {
		if err == repository.ErrCartNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
			return
		}

		h.logger.Error("Failed to remove cart item", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to remove product from cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product removed from cart"})
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		if err == repository.ErrCartNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
			return
		}

		h.logger.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
