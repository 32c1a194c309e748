package service

import (
	"context"
	"errors"
	"time"

	"souq-api/internal/domain"
	"souq-api/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty = errors.New("no products in cart")
)

// LocalizedOrderItem is an order line with its product resolved for
// the request language.
type LocalizedOrderItem struct {
	ID       uuid.UUID                `json:"id"`
	Quantity int                      `json:"quantity"`
	Product  *domain.LocalizedProduct `json:"product"`
}

// OrderView is an order with its localized items, as returned by the
// read paths.
type OrderView struct {
	ID        uuid.UUID             `json:"id"`
	Status    string                `json:"order_status"`
	CreatedAt time.Time             `json:"created_at"`
	Items     []*LocalizedOrderItem `json:"items"`
}

// BillingView is a billing record with its order embedded.
type BillingView struct {
	Billing domain.OrderBilling `json:"billing"`
	Order   OrderView           `json:"order"`
}

// BillingInput carries the shipping address and payment details for
// billing creation.
type BillingInput struct {
	OrderID       uuid.UUID
	Name          string
	Phone1        string
	Phone2        string
	FlatNo        int
	FloorNo       int
	BuildingNo    int
	Street        string
	City          string
	Details       string
	TotalCost     float64
	PaymentMethod string
}

// OrderService defines the interface for order business logic
type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	CreateBilling(ctx context.Context, userID uuid.UUID, input *BillingInput) (*domain.OrderBilling, error)
	GetLatestOrder(ctx context.Context, userID uuid.UUID, lang string) (*OrderView, error)
	ListOrdersWithBilling(ctx context.Context, userID uuid.UUID, lang string) ([]*BillingView, error)
	GetOrderBillingByID(ctx context.Context, orderID, userID uuid.UUID, lang string) (*BillingView, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// PlaceOrder converts the caller's cart into an order. The cart is
// read first and rejected if empty, so no write happens for an empty
// cart; the order, its items, and the cart clearing then commit as one
// transaction.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    domain.OrderStatusWaiting,
		CreatedAt: time.Now(),
	}

	orderItems := make([]*domain.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		orderItems = append(orderItems, &domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: ci.Item.ProductID,
			Quantity:  ci.Item.Quantity,
		})
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, orderItems, cart.ID); err != nil {
		return nil, err
	}

	return order, nil
}

// CreateBilling records shipping and payment details for an order.
// This is a separate call after checkout; nothing ties it atomically
// to order creation.
func (s *orderService) CreateBilling(ctx context.Context, userID uuid.UUID, input *BillingInput) (*domain.OrderBilling, error) {
	billing := &domain.OrderBilling{
		ID:            uuid.New(),
		OrderID:       input.OrderID,
		UserID:        userID,
		Name:          input.Name,
		Phone1:        input.Phone1,
		Phone2:        input.Phone2,
		FlatNo:        input.FlatNo,
		FloorNo:       input.FloorNo,
		BuildingNo:    input.BuildingNo,
		Street:        input.Street,
		City:          input.City,
		Details:       input.Details,
		TotalCost:     input.TotalCost,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	if err := s.orderRepo.CreateBilling(ctx, billing); err != nil {
		return nil, err
	}

	return billing, nil
}

// GetLatestOrder returns the caller's most recent order with localized items
func (s *orderService) GetLatestOrder(ctx context.Context, userID uuid.UUID, lang string) (*OrderView, error) {
	order, err := s.orderRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.orderRepo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &OrderView{
		ID:        order.ID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Items:     localizeOrderItems(items, lang),
	}, nil
}

// ListOrdersWithBilling returns the caller's billing records with
// their orders and localized items, newest first
func (s *orderService) ListOrdersWithBilling(ctx context.Context, userID uuid.UUID, lang string) ([]*BillingView, error) {
	details, err := s.orderRepo.ListBillingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*BillingView, 0, len(details))
	for _, d := range details {
		views = append(views, billingView(d, lang))
	}

	return views, nil
}

// GetOrderBillingByID returns one billing record with its order,
// scoped to the caller
func (s *orderService) GetOrderBillingByID(ctx context.Context, orderID, userID uuid.UUID, lang string) (*BillingView, error) {
	detail, err := s.orderRepo.FindBillingByOrderID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	return billingView(detail, lang), nil
}

func billingView(d *repository.BillingDetail, lang string) *BillingView {
	return &BillingView{
		Billing: d.Billing,
		Order: OrderView{
			ID:        d.Order.ID,
			Status:    d.Order.Status,
			CreatedAt: d.Order.CreatedAt,
			Items:     localizeOrderItems(d.Items, lang),
		},
	}
}

func localizeOrderItems(details []*domain.OrderItemDetail, lang string) []*LocalizedOrderItem {
	items := make([]*LocalizedOrderItem, 0, len(details))
	for _, d := range details {
		items = append(items, &LocalizedOrderItem{
			ID:       d.Item.ID,
			Quantity: d.Item.Quantity,
			Product:  Localize(&d.Product, lang),
		})
	}
	return items
}
