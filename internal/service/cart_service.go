package service

import (
	"context"

	"souq-api/internal/domain"
	"souq-api/internal/repository"

	"github.com/google/uuid"
)

// LocalizedCartItem is a cart line with its product resolved for the
// request language.
type LocalizedCartItem struct {
	ID       uuid.UUID                `json:"id"`
	Quantity int                      `json:"quantity"`
	Product  *domain.LocalizedProduct `json:"product"`
}

// CartService defines the interface for cart business logic. All
// operations resolve the caller's cart from the user id embedded in
// the token; a user without a cart gets ErrCartNotFound.
type CartService interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	ListItems(ctx context.Context, userID uuid.UUID, lang string) ([]*LocalizedCartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo repository.CartRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository) CartService {
	return &cartService{cartRepo: cartRepo}
}

// AddItem inserts a new line into the caller's cart. A product already
// present is an error, not a quantity merge.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	item := &domain.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}

	return s.cartRepo.AddItem(ctx, item)
}

// UpdateItemQuantity changes the quantity of an existing line
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.cartRepo.UpdateItemQuantity(ctx, cart.ID, productID, quantity)
}

// ListItems returns the caller's cart lines with localized products
func (s *cartService) ListItems(ctx context.Context, userID uuid.UUID, lang string) ([]*LocalizedCartItem, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*LocalizedCartItem, 0, len(details))
	for _, d := range details {
		items = append(items, &LocalizedCartItem{
			ID:       d.Item.ID,
			Quantity: d.Item.Quantity,
			Product:  Localize(&d.Product, lang),
		})
	}

	return items, nil
}

// RemoveItem deletes a single line. Removing an absent line succeeds.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.cartRepo.RemoveItem(ctx, cart.ID, productID)
}

// Clear empties the caller's cart. Idempotent.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.cartRepo.Clear(ctx, cart.ID)
}
