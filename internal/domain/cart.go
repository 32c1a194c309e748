package domain

import "github.com/google/uuid"

// Cart is the per-user mutable collection of selected products.
type Cart struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`
}

// CartItem links a cart to a product. The (cart_id, product_id) pair
// is unique; adding the same product twice is rejected rather than merged.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cart_id" db:"cart_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// CartItemDetail is a cart item with its product embedded.
type CartItemDetail struct {
	Item    CartItem
	Product Product
}
