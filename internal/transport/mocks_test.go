package transport

import (
	"context"
	"strings"

	"souq-api/internal/domain"
	"souq-api/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories backing real services in the handler tests

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) SetAdmin(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			user.IsAdmin = true
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockCartRepository struct {
	carts map[uuid.UUID]*domain.Cart
	items map[uuid.UUID][]*domain.CartItemDetail
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{
		carts: make(map[uuid.UUID]*domain.Cart),
		items: make(map[uuid.UUID][]*domain.CartItemDetail),
	}
}

func (m *mockCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	m.carts[cart.UserID] = cart
	return nil
}

func (m *mockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart, exists := m.carts[userID]
	if !exists {
		return nil, repository.ErrCartNotFound
	}
	return cart, nil
}

func (m *mockCartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	for _, existing := range m.items[item.CartID] {
		if existing.Item.ProductID == item.ProductID {
			return repository.ErrCartItemExists
		}
	}
	m.items[item.CartID] = append(m.items[item.CartID], &domain.CartItemDetail{
		Item:    *item,
		Product: domain.Product{ID: item.ProductID},
	})
	return nil
}

func (m *mockCartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	for _, existing := range m.items[cartID] {
		if existing.Item.ProductID == productID {
			existing.Item.Quantity = quantity
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

func (m *mockCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItemDetail, error) {
	return m.items[cartID], nil
}

func (m *mockCartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	items := m.items[cartID]
	for i, existing := range items {
		if existing.Item.ProductID == productID {
			m.items[cartID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockCartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	m.items[cartID] = nil
	return nil
}

type mockProductRepository struct {
	products []*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return m.products, nil
}

func (m *mockProductRepository) ListByCategory(ctx context.Context, category, lang string) ([]*domain.Product, error) {
	matched := []*domain.Product{}
	for _, p := range m.products {
		cat := p.CategoryEn
		if lang == "ar" {
			cat = p.CategoryAr
		}
		if cat == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (m *mockProductRepository) ListCategories(ctx context.Context, lang string) ([]*domain.CategoryCount, error) {
	counts := make(map[string]int)
	for _, p := range m.products {
		cat := p.CategoryEn
		if lang == "ar" {
			cat = p.CategoryAr
		}
		counts[cat]++
	}
	categories := []*domain.CategoryCount{}
	for cat, count := range counts {
		categories = append(categories, &domain.CategoryCount{Category: cat, Count: count})
	}
	return categories, nil
}

func (m *mockProductRepository) SearchSort(ctx context.Context, search, category, sortBy, lang string) ([]*domain.Product, error) {
	matched := []*domain.Product{}
	for _, p := range m.products {
		name := p.NameEn
		if lang == "ar" {
			name = p.NameAr
		}
		if search != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

type mockFeedbackRepository struct {
	feedbacks []*domain.Feedback
}

func newMockFeedbackRepository() *mockFeedbackRepository {
	return &mockFeedbackRepository{}
}

func (m *mockFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	m.feedbacks = append(m.feedbacks, feedback)
	return nil
}

func (m *mockFeedbackRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.FeedbackWithAuthor, error) {
	result := []*domain.FeedbackWithAuthor{}
	for _, f := range m.feedbacks {
		if f.ProductID == productID {
			result = append(result, &domain.FeedbackWithAuthor{Feedback: *f})
		}
	}
	return result, nil
}
