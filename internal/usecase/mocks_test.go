package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: CartRepository
// =====================

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, cart model.Cart) (model.Cart, error) {
	args := m.Called(ctx, cart)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) FindActiveByOriginIP(ctx context.Context, originIP string) (model.Cart, error) {
	args := m.Called(ctx, originIP)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) AssignToUser(ctx context.Context, cartID string, userID string) error {
	args := m.Called(ctx, cartID, userID)
	return args.Error(0)
}

func (m *MockCartRepository) LinkOrder(ctx context.Context, cartID string, orderID string) error {
	args := m.Called(ctx, cartID, orderID)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// =====================
// Mock: CartItemRepository
// =====================

type MockCartItemRepository struct {
	mock.Mock
}

func (m *MockCartItemRepository) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *MockCartItemRepository) SetQuantity(ctx context.Context, cartID string, productSKU string, qty int64) error {
	args := m.Called(ctx, cartID, productSKU, qty)
	return args.Error(0)
}

func (m *MockCartItemRepository) Delete(ctx context.Context, cartID string, productSKU string) error {
	args := m.Called(ctx, cartID, productSKU)
	return args.Error(0)
}

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	total, _ := args.Get(1).(int64)
	return items, total, args.Error(2)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (model.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, sku string) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

// =====================
// Mock: CategoryRepository
// =====================

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

// =====================
// Mock: CouponRepository
// =====================

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *MockCouponRepository) Create(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Coupon)
	return created, args.Error(1)
}

// =====================
// Mock: OrderRepository
// =====================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	if err := args.Error(1); err != nil {
		return model.Order{}, err
	}
	//成功時は保存した注文をそのまま返す
	return order, nil
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return orders, total, args.Error(2)
}

// =====================
// Mock: OrderItemRepository
// =====================

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

// =====================
// Tx: モックをそのまま渡すトランザクション
// =====================

type stubTxRepos struct {
	carts      *MockCartRepository
	cartItems  *MockCartItemRepository
	products   *MockProductRepository
	categories *MockCategoryRepository
	coupons    *MockCouponRepository
	orders     *MockOrderRepository
	orderItems *MockOrderItemRepository
}

func newStubTxRepos() stubTxRepos {
	return stubTxRepos{
		carts:      new(MockCartRepository),
		cartItems:  new(MockCartItemRepository),
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		coupons:    new(MockCouponRepository),
		orders:     new(MockOrderRepository),
		orderItems: new(MockOrderItemRepository),
	}
}

func (s stubTxRepos) Carts() repo.CartRepository           { return s.carts }
func (s stubTxRepos) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s stubTxRepos) Products() repo.ProductRepository     { return s.products }
func (s stubTxRepos) Categories() repo.CategoryRepository  { return s.categories }
func (s stubTxRepos) Coupons() repo.CouponRepository       { return s.coupons }
func (s stubTxRepos) Orders() repo.OrderRepository         { return s.orders }
func (s stubTxRepos) OrderItems() repo.OrderItemRepository { return s.orderItems }

// commit/rollbackは無し。fnのエラーをそのまま返す。
type stubTxManager struct {
	repos stubTxRepos
}

func (s stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

// =====================
// Helper
// =====================

type stubIDGenerator struct {
	ids  []string
	next int
}

func (g *stubIDGenerator) NewID() string {
	if g.next >= len(g.ids) {
		return "generated-id"
	}
	id := g.ids[g.next]
	g.next++
	return id
}

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time {
	return c.now
}

func ptr[T any](v T) *T {
	return &v
}
