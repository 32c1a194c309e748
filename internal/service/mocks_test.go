package service

import (
	"context"

	"souq-api/internal/domain"
	"souq-api/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories shared by the service tests

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
	// products lets tests attach product data to cart lines
	products map[uuid.UUID]*domain.Product
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{
		carts:    make(map[uuid.UUID]*domain.Cart),
		items:    make(map[uuid.UUID][]*domain.CartItemDetail),
		products: make(map[uuid.UUID]*domain.Product),
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

	product := domain.Product{ID: item.ProductID}
	if p, ok := m.products[item.ProductID]; ok {
		product = *p
	}

	m.items[item.CartID] = append(m.items[item.CartID], &domain.CartItemDetail{
		Item:    *item,
		Product: product,
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
	// Removing an absent line succeeds
	return nil
}

func (m *mockCartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	m.items[cartID] = nil
	return nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *mockProductRepository) ListByCategory(ctx context.Context, category, lang string) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for _, p := range m.products {
		cat := p.CategoryEn
		if lang == "ar" {
			cat = p.CategoryAr
		}
		if cat == category {
			products = append(products, p)
		}
	}
	return products, nil
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
	products := []*domain.Product{}
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

type mockOrderRepository struct {
	orders   map[uuid.UUID]*domain.Order
	items    map[uuid.UUID][]*domain.OrderItem
	billings map[uuid.UUID]*domain.OrderBilling
	cartRepo *mockCartRepository
}

func newMockOrderRepository(cartRepo *mockCartRepository) *mockOrderRepository {
	return &mockOrderRepository{
		orders:   make(map[uuid.UUID]*domain.Order),
		items:    make(map[uuid.UUID][]*domain.OrderItem),
		billings: make(map[uuid.UUID]*domain.OrderBilling),
		cartRepo: cartRepo,
	}
}

func (m *mockOrderRepository) CreateFromCart(ctx context.Context, order *domain.Order, items []*domain.OrderItem, cartID uuid.UUID) error {
	m.orders[order.ID] = order
	m.items[order.ID] = items
	if m.cartRepo != nil {
		m.cartRepo.items[cartID] = nil
	}
	return nil
}

func (m *mockOrderRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	var latest *domain.Order
	for _, order := range m.orders {
		if order.UserID != userID {
			continue
		}
		if latest == nil || order.CreatedAt.After(latest.CreatedAt) {
			latest = order
		}
	}
	if latest == nil {
		return nil, repository.ErrOrderNotFound
	}
	return latest, nil
}

func (m *mockOrderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItemDetail, error) {
	details := []*domain.OrderItemDetail{}
	for _, item := range m.items[orderID] {
		details = append(details, &domain.OrderItemDetail{
			Item:    *item,
			Product: domain.Product{ID: item.ProductID},
		})
	}
	return details, nil
}

func (m *mockOrderRepository) CreateBilling(ctx context.Context, billing *domain.OrderBilling) error {
	if _, exists := m.billings[billing.OrderID]; exists {
		return repository.ErrBillingExists
	}
	m.billings[billing.OrderID] = billing
	return nil
}

func (m *mockOrderRepository) ListBillingByUser(ctx context.Context, userID uuid.UUID) ([]*repository.BillingDetail, error) {
	details := []*repository.BillingDetail{}
	for orderID, billing := range m.billings {
		if billing.UserID != userID {
			continue
		}
		items, _ := m.ListItems(ctx, orderID)
		details = append(details, &repository.BillingDetail{
			Billing: *billing,
			Order:   *m.orders[orderID],
			Items:   items,
		})
	}
	return details, nil
}

func (m *mockOrderRepository) FindBillingByOrderID(ctx context.Context, orderID, userID uuid.UUID) (*repository.BillingDetail, error) {
	billing, exists := m.billings[orderID]
	if !exists || billing.UserID != userID {
		return nil, repository.ErrBillingNotFound
	}
	items, _ := m.ListItems(ctx, orderID)
	return &repository.BillingDetail{
		Billing: *billing,
		Order:   *m.orders[orderID],
		Items:   items,
	}, nil
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
	for i := len(m.feedbacks) - 1; i >= 0; i-- {
		if m.feedbacks[i].ProductID == productID {
			result = append(result, &domain.FeedbackWithAuthor{Feedback: *m.feedbacks[i]})
		}
	}
	return result, nil
}
