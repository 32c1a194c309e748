package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"souq-api/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartItemExists   = errors.New("product already in cart")
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	AddItem(ctx context.Context, item *domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItemDetail, error)
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create inserts a new cart. Each user has at most one, enforced by
// the unique constraint on user_id.
func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	query := `INSERT INTO carts (id, user_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, cart.ID, cart.UserID)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

// FindByUserID retrieves the cart owned by the given user
func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	query := `SELECT id, user_id FROM carts WHERE user_id = $1`

	cart := &domain.Cart{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart by user ID: %w", err)
	}

	return cart, nil
}

// AddItem inserts a cart line. A duplicate (cart, product) pair is an
// error; there is no merge-on-duplicate policy.
func (r *cartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, item.ID, item.CartID, item.ProductID, item.Quantity)
	if err != nil {
		if isUniqueViolation(err, "cart_items_cart_id_product_id_key") {
			return ErrCartItemExists
		}
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// UpdateItemQuantity sets the quantity for an existing cart line
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE cart_id = $1 AND product_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, cartID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// ListItems retrieves all lines of a cart with their products embedded
func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItemDetail, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name_en, p.name_ar, p.description_en, p.description_ar,
		       p.category_en, p.category_ar, p.price, p.image_urls, p.visible
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []*domain.CartItemDetail{}
	for rows.Next() {
		detail := &domain.CartItemDetail{}
		err := rows.Scan(
			&detail.Item.ID,
			&detail.Item.CartID,
			&detail.Item.ProductID,
			&detail.Item.Quantity,
			&detail.Product.ID,
			&detail.Product.NameEn,
			&detail.Product.NameAr,
			&detail.Product.DescriptionEn,
			&detail.Product.DescriptionAr,
			&detail.Product.CategoryEn,
			&detail.Product.CategoryAr,
			&detail.Product.Price,
			&detail.Product.ImageURLs,
			&detail.Product.Show,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// RemoveItem deletes a single cart line. Absence is not an error.
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	if _, err := r.db.ExecContext(ctx, query, cartID, productID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

// Clear deletes every line of the cart. Idempotent.
func (r *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1`

	if _, err := r.db.ExecContext(ctx, query, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
