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
	ErrOrderNotFound   = errors.New("order not found")
	ErrBillingNotFound = errors.New("order billing not found")
	ErrBillingExists   = errors.New("order already has a billing record")
)

// BillingDetail is a billing record joined with its order and the
// order's items, used by the history read paths.
type BillingDetail struct {
	Billing domain.OrderBilling
	Order   domain.Order
	Items   []*domain.OrderItemDetail
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// CreateFromCart writes the order, its items, and the cart-item
	// deletion in one transaction.
	CreateFromCart(ctx context.Context, order *domain.Order, items []*domain.OrderItem, cartID uuid.UUID) error
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItemDetail, error)
	CreateBilling(ctx context.Context, billing *domain.OrderBilling) error
	ListBillingByUser(ctx context.Context, userID uuid.UUID) ([]*BillingDetail, error)
	FindBillingByOrderID(ctx context.Context, orderID, userID uuid.UUID) (*BillingDetail, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateFromCart inserts the order and its items and clears the source
// cart atomically. A failure at any step rolls back every write, so an
// order without line items can never be observed.
func (r *orderRepository) CreateFromCart(ctx context.Context, order *domain.Order, items []*domain.OrderItem, cartID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, orderQuery, order.ID, order.UserID, order.Status, order.CreatedAt); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
	`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, itemQuery, item.ID, item.OrderID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// FindLatestByUser retrieves the caller's most recent order
func (r *orderRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, user_id, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find latest order: %w", err)
	}

	return order, nil
}

// ListItems retrieves an order's lines with their products embedded
func (r *orderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItemDetail, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity,
		       p.id, p.name_en, p.name_ar, p.description_en, p.description_ar,
		       p.category_en, p.category_ar, p.price, p.image_urls, p.visible
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

// CreateBilling inserts the billing record for an order. The unique
// index on order_id enforces at most one record per order.
func (r *orderRepository) CreateBilling(ctx context.Context, billing *domain.OrderBilling) error {
	query := `
		INSERT INTO order_billing (id, order_id, user_id, name, phone1, phone2,
			flat_no, floor_no, building_no, street, city, details,
			total_cost, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		billing.ID,
		billing.OrderID,
		billing.UserID,
		billing.Name,
		billing.Phone1,
		billing.Phone2,
		billing.FlatNo,
		billing.FloorNo,
		billing.BuildingNo,
		billing.Street,
		billing.City,
		billing.Details,
		billing.TotalCost,
		billing.PaymentMethod,
		billing.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "order_billing_order_id_key") {
			return ErrBillingExists
		}
		return fmt.Errorf("failed to create order billing: %w", err)
	}

	return nil
}

const billingColumns = `b.id, b.order_id, b.user_id, b.name, b.phone1, b.phone2,
	b.flat_no, b.floor_no, b.building_no, b.street, b.city, b.details,
	b.total_cost, b.payment_method, b.created_at,
	o.id, o.user_id, o.status, o.created_at`

// ListBillingByUser retrieves all of the caller's billing records with
// their orders and order items, newest first
func (r *orderRepository) ListBillingByUser(ctx context.Context, userID uuid.UUID) ([]*BillingDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM order_billing b
		JOIN orders o ON o.id = b.order_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, billingColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order billing: %w", err)
	}
	defer rows.Close()

	details := []*BillingDetail{}
	for rows.Next() {
		detail := &BillingDetail{}
		if err := scanBilling(rows, detail); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order billing: %w", err)
	}

	for _, detail := range details {
		items, err := r.ListItems(ctx, detail.Order.ID)
		if err != nil {
			return nil, err
		}
		detail.Items = items
	}

	return details, nil
}

// FindBillingByOrderID retrieves one billing record with its order and
// items, scoped to the owning user
func (r *orderRepository) FindBillingByOrderID(ctx context.Context, orderID, userID uuid.UUID) (*BillingDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM order_billing b
		JOIN orders o ON o.id = b.order_id
		WHERE b.order_id = $1 AND b.user_id = $2
	`, billingColumns)

	rows, err := r.db.QueryContext(ctx, query, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order billing: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find order billing: %w", err)
		}
		return nil, ErrBillingNotFound
	}

	detail := &BillingDetail{}
	if err := scanBilling(rows, detail); err != nil {
		return nil, err
	}
	rows.Close()

	items, err := r.ListItems(ctx, detail.Order.ID)
	if err != nil {
		return nil, err
	}
	detail.Items = items

	return detail, nil
}

func scanBilling(rows *sql.Rows, detail *BillingDetail) error {
	err := rows.Scan(
		&detail.Billing.ID,
		&detail.Billing.OrderID,
		&detail.Billing.UserID,
		&detail.Billing.Name,
		&detail.Billing.Phone1,
		&detail.Billing.Phone2,
		&detail.Billing.FlatNo,
		&detail.Billing.FloorNo,
		&detail.Billing.BuildingNo,
		&detail.Billing.Street,
		&detail.Billing.City,
		&detail.Billing.Details,
		&detail.Billing.TotalCost,
		&detail.Billing.PaymentMethod,
		&detail.Billing.CreatedAt,
		&detail.Order.ID,
		&detail.Order.UserID,
		&detail.Order.Status,
		&detail.Order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to scan order billing: %w", err)
	}
	return nil
}

func scanOrderItems(rows *sql.Rows) ([]*domain.OrderItemDetail, error) {
	items := []*domain.OrderItemDetail{}
	for rows.Next() {
		detail := &domain.OrderItemDetail{}
		err := rows.Scan(
			&detail.Item.ID,
			&detail.Item.OrderID,
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
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
