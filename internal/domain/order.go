package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order status values. Transitions only move forward; nothing in the
// exposed API moves an order back to waiting.
const (
	OrderStatusWaiting = "Waiting for Confirmation"
	OrderStatusShipped = "Shipped"
)

// Order is an immutable snapshot of cart contents created at checkout.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Status    string    `json:"order_status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OrderItem is one line of an order. The (order_id, product_id) pair
// is unique.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// OrderItemDetail is an order item with its product embedded.
type OrderItemDetail struct {
	Item    OrderItem
	Product Product
}

// OrderBilling holds the shipping address and payment details for one
// order. Created by a separate call after checkout, not atomically.
type OrderBilling struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OrderID       uuid.UUID `json:"order_id" db:"order_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Phone1        string    `json:"phone1" db:"phone1"`
	Phone2        string    `json:"phone2" db:"phone2"`
	FlatNo        int       `json:"flat_no" db:"flat_no"`
	FloorNo       int       `json:"floor_no" db:"floor_no"`
	BuildingNo    int       `json:"building_no" db:"building_no"`
	Street        string    `json:"street" db:"street"`
	City          string    `json:"city" db:"city"`
	Details       string    `json:"details" db:"details"`
	TotalCost     float64   `json:"total_cost" db:"total_cost"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
