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
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `id, name_en, name_ar, description_en, description_ar,
	category_en, category_ar, price, image_urls, visible`

// localizedColumn maps a language tag to the physical column for a
// localizable field. The whitelist keeps user input out of SQL.
func localizedColumn(field, lang string) string {
	if lang != "ar" {
		lang = "en"
	}
	return field + "_" + lang
}

// orderClause maps an exposed sort key to an ORDER BY clause over the
// localized name column. Unrecognized keys keep natural storage order.
func orderClause(sortBy, lang string) string {
	nameCol := localizedColumn("name", lang)
	switch sortBy {
	case "name_asc":
		return "ORDER BY " + nameCol + " ASC"
	case "name_desc":
		return "ORDER BY " + nameCol + " DESC"
	case "price_asc":
		return "ORDER BY price ASC"
	case "price_desc":
		return "ORDER BY price DESC"
	default:
		return ""
	}
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category, lang string) ([]*domain.Product, error)
	ListCategories(ctx context.Context, lang string) ([]*domain.CategoryCount, error)
	SearchSort(ctx context.Context, search, category, sortBy, lang string) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name_en, name_ar, description_en, description_ar,
			category_en, category_ar, price, image_urls, visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.NameEn,
		product.NameAr,
		product.DescriptionEn,
		product.DescriptionAr,
		product.CategoryEn,
		product.CategoryAr,
		product.Price,
		product.ImageURLs,
		product.Show,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.NameEn,
		&product.NameAr,
		&product.DescriptionEn,
		&product.DescriptionAr,
		&product.CategoryEn,
		&product.CategoryAr,
		&product.Price,
		&product.ImageURLs,
		&product.Show,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves the full catalog in natural storage order
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListByCategory retrieves products whose localized category matches
func (r *productRepository) ListByCategory(ctx context.Context, category, lang string) ([]*domain.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s = $1`,
		productColumns, localizedColumn("category", lang),
	)

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListCategories groups the catalog by localized category, counting
// products per category, most populated first
func (r *productRepository) ListCategories(ctx context.Context, lang string) ([]*domain.CategoryCount, error) {
	col := localizedColumn("category", lang)
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) FROM products GROUP BY %s ORDER BY COUNT(*) DESC`,
		col, col,
	)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.CategoryCount{}
	for rows.Next() {
		c := &domain.CategoryCount{}
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// SearchSort filters by case-insensitive substring match on the
// localized name, optionally by localized category, then applies the
// requested sort. An empty search matches everything.
func (r *productRepository) SearchSort(ctx context.Context, search, category, sortBy, lang string) ([]*domain.Product, error) {
	nameCol := localizedColumn("name", lang)

	whereClause := fmt.Sprintf("WHERE %s ILIKE $1", nameCol)
	args := []interface{}{"%" + search + "%"}

	if category != "" {
		whereClause += fmt.Sprintf(" AND %s = $2", localizedColumn("category", lang))
		args = append(args, category)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM products %s %s`,
		productColumns, whereClause, orderClause(sortBy, lang),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.NameEn,
			&product.NameAr,
			&product.DescriptionEn,
			&product.DescriptionAr,
			&product.CategoryEn,
			&product.CategoryAr,
			&product.Price,
			&product.ImageURLs,
			&product.Show,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
