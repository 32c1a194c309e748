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

// CreateBillingRequest carries the shipping address and payment
// details recorded after checkout
type CreateBillingRequest struct {
	OrderID       uuid.UUID `json:"order_id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Phone1        string    `json:"phone1" validate:"required"`
	Phone2        string    `json:"phone2"`
	FlatNo        int       `json:"flat_no" validate:"required"`
	FloorNo       int       `json:"floor_no" validate:"required"`
	BuildingNo    int       `json:"building_no" validate:"required"`
	Street        string    `json:"street" validate:"required"`
	City          string    `json:"city" validate:"required"`
	Details       string    `json:"details"`
	TotalCost     float64   `json:"total_cost" validate:"required,gte=0"`
	PaymentMethod string    `json:"payment_method" validate:"required"`
}

// OrderHandler handles HTTP requests for checkout and order history
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers order routes under /api/order. All of them
// require a token.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/order", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/", h.PlaceOrder)
		r.Post("/bill", h.CreateBilling)
		r.Get("/", h.GetLatestOrder)
		r.Get("/all", h.ListOrders)
		r.Get("/{id}", h.GetOrderByID)
	})
}

// PlaceOrder converts the caller's cart into an order
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), userID)
	if err != nil {
		switch err {
		case service.ErrCartEmpty:
			middleware.RespondWithError(w, http.StatusBadRequest, "no products in cart")
		case repository.ErrCartNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "cart not found")
		default:
			h.logger.Error("Failed to place order", zap.Error(err), zap.String("user_id", userID.String()))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	h.logger.Info("Order placed", zap.String("order_id", order.ID.String()), zap.String("user_id", userID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// CreateBilling records shipping and payment details for an order
func (h *OrderHandler) CreateBilling(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	var req CreateBillingRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Billing validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	billing, err := h.orderService.CreateBilling(r.Context(), userID, &service.BillingInput{
		OrderID:       req.OrderID,
		Name:          req.Name,
		Phone1:        req.Phone1,
		Phone2:        req.Phone2,
		FlatNo:        req.FlatNo,
		FloorNo:       req.FloorNo,
		BuildingNo:    req.BuildingNo,
		Street:        req.Street,
		City:          req.City,
		Details:       req.Details,
		TotalCost:     req.TotalCost,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if err == repository.ErrBillingExists {
			middleware.RespondWithError(w, http.StatusBadRequest, "billing already recorded for this order")
			return
		}

		h.logger.Error("Failed to create billing", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to record billing")
		return
	}

	h.logger.Info("Billing recorded", zap.String("order_id", billing.OrderID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, billing)
}

// GetLatestOrder returns the caller's most recent order
func (h *OrderHandler) GetLatestOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	lang := middleware.GetLang(r.Context())

	order, err := h.orderService.GetLatestOrder(r.Context(), userID, lang)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "no orders found")
			return
		}

		h.logger.Error("Failed to get latest order", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to fetch order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// ListOrders returns the caller's billing records with their orders,
// newest first
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	lang := middleware.GetLang(r.Context())

	views, err := h.orderService.ListOrdersWithBilling(r.Context(), userID, lang)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to fetch orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, views)
}

// GetOrderByID returns one billing record with its order, scoped to
// the caller
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "access denied")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid ID format")
		return
	}

	lang := middleware.GetLang(r.Context())

	view, err := h.orderService.GetOrderBillingByID(r.Context(), orderID, userID, lang)
	if err != nil {
		if err == repository.ErrBillingNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}

		h.logger.Error("Failed to get order", zap.Error(err), zap.String("order_id", orderID.String()))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to fetch order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}
