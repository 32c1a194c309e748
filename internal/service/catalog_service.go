package service

import (
	"context"
	"fmt"

	"souq-api/internal/domain"
	"souq-api/internal/repository"

	"github.com/google/uuid"
)

// CatalogService defines the interface for catalog business logic.
// Every read resolves localized fields for the negotiated language,
// falling back to English when the requested variant is absent, and
// expands the stored image reference string into a list.
type CatalogService interface {
	ListProducts(ctx context.Context, lang string) ([]*domain.LocalizedProduct, error)
	GetProductByID(ctx context.Context, id uuid.UUID, lang string) (*domain.LocalizedProduct, error)
	ListByCategory(ctx context.Context, category, lang string) ([]*domain.LocalizedProduct, error)
	ListCategories(ctx context.Context, lang string) ([]*domain.CategoryCount, error)
	SearchSort(ctx context.Context, search, category, sortBy, lang string) ([]*domain.LocalizedProduct, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// Localize resolves one product to the requested language. Arabic
// fields fall back to the English variant when empty.
func Localize(p *domain.Product, lang string) *domain.LocalizedProduct {
	pick := func(en, ar string) string {
		if lang == "ar" && ar != "" {
			return ar
		}
		return en
	}

	return &domain.LocalizedProduct{
		ID:          p.ID,
		Name:        pick(p.NameEn, p.NameAr),
		Description: pick(p.DescriptionEn, p.DescriptionAr),
		Category:    pick(p.CategoryEn, p.CategoryAr),
		Price:       p.Price,
		ImageURLs:   domain.SplitImageURLs(p.ImageURLs),
	}
}

func localizeAll(products []*domain.Product, lang string) []*domain.LocalizedProduct {
	localized := make([]*domain.LocalizedProduct, 0, len(products))
	for _, p := range products {
		localized = append(localized, Localize(p, lang))
	}
	return localized
}

// ListProducts returns the full catalog localized for lang
func (s *catalogService) ListProducts(ctx context.Context, lang string) ([]*domain.LocalizedProduct, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return localizeAll(products, lang), nil
}

// GetProductByID returns one localized product
func (s *catalogService) GetProductByID(ctx context.Context, id uuid.UUID, lang string) (*domain.LocalizedProduct, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Localize(product, lang), nil
}

// ListByCategory returns localized products in the given category
func (s *catalogService) ListByCategory(ctx context.Context, category, lang string) ([]*domain.LocalizedProduct, error) {
	products, err := s.productRepo.ListByCategory(ctx, category, lang)
	if err != nil {
		return nil, err
	}
	return localizeAll(products, lang), nil
}

// ListCategories returns localized category names with product counts
func (s *catalogService) ListCategories(ctx context.Context, lang string) ([]*domain.CategoryCount, error) {
	return s.productRepo.ListCategories(ctx, lang)
}

// SearchSort filters and sorts the catalog
func (s *catalogService) SearchSort(ctx context.Context, search, category, sortBy, lang string) ([]*domain.LocalizedProduct, error) {
	products, err := s.productRepo.SearchSort(ctx, search, category, sortBy, lang)
	if err != nil {
		return nil, err
	}
	return localizeAll(products, lang), nil
}

// CreateProduct adds a product with both language variants
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return s.productRepo.Create(ctx, product)
}
