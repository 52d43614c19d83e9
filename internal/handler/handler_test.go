package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testIssuer() *auth.JWTIssuer {
	return auth.NewJWTIssuer("test-secret", 15*time.Minute, 14*24*time.Hour, 30*time.Minute)
}

// =====================
// ルート定義
// =====================

func TestAuthHandler_RoutePaths(t *testing.T) {
	e := echo.New()
	h := handler.NewAuthHandler(nil, nil, nil)
	h.RegisterRoutes(e)

	paths := map[string]bool{}
	for _, r := range e.Routes() {
		paths[r.Method+" "+r.Path] = true
	}

	//会員登録はバージョン付き、認証系は/auth直下
	assert.True(t, paths["POST /v1/users"])
	assert.True(t, paths["POST /auth/token"])
	assert.True(t, paths["POST /auth/refresh_token"])
	assert.True(t, paths["POST /auth/forgot-password"])
	assert.True(t, paths["POST /auth/change-password"])
}

// =====================
// Stub: ProductRepository / CategoryRepository
// =====================

type stubProductRepo struct {
	products []model.Product
}

func (s stubProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	return s.products, int64(len(s.products)), nil
}

func (s stubProductRepo) FindBySKU(ctx context.Context, sku string) (model.Product, error) {
	return model.Product{}, repo.ErrNotFound
}

func (s stubProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return p, nil
}

func (s stubProductRepo) Update(ctx context.Context, p model.Product) error { return nil }
func (s stubProductRepo) Delete(ctx context.Context, sku string) error      { return nil }

type stubCategoryRepo struct{}

func (s stubCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return []model.Category{}, nil
}

func (s stubCategoryRepo) FindByID(ctx context.Context, id int64) (model.Category, error) {
	return model.Category{ID: id, Name: "Misc"}, nil
}

func (s stubCategoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	return c, nil
}

// =====================
// Stub: Order側（一覧に必要な分だけ）
// =====================

type stubOrderRepo struct {
	orders []model.Order
}

func (s stubOrderRepo) Create(ctx context.Context, o model.Order) (model.Order, error) {
	return o, nil
}

func (s stubOrderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	return model.Order{}, repo.ErrNotFound
}

func (s stubOrderRepo) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error) {
	return s.orders, int64(len(s.orders)), nil
}

type stubOrderItemRepo struct{}

func (s stubOrderItemRepo) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	return nil
}

func (s stubOrderItemRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	return []model.OrderItem{}, nil
}

type stubTxRepos struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (s stubTxRepos) Carts() repo.CartRepository           { return nil }
func (s stubTxRepos) CartItems() repo.CartItemRepository   { return nil }
func (s stubTxRepos) Products() repo.ProductRepository     { return nil }
func (s stubTxRepos) Categories() repo.CategoryRepository  { return nil }
func (s stubTxRepos) Coupons() repo.CouponRepository       { return nil }
func (s stubTxRepos) Orders() repo.OrderRepository         { return s.orders }
func (s stubTxRepos) OrderItems() repo.OrderItemRepository { return s.orderItems }

type stubTxManager struct {
	repos stubTxRepos
}

func (s stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

type stubIDGen struct{}

func (stubIDGen) NewID() string { return "generated-id" }

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Now() }

// =====================
// レスポンスの外枠
// =====================

// 一覧も他と同じ {"data": ...} で返す
func TestProductHandler_ListUsesDataEnvelope(t *testing.T) {
	e := echo.New()
	uc := usecase.NewProductUsecase(stubProductRepo{products: []model.Product{
		{SKU: "AAA111", Name: "Thing", UnitPrice: 100, CategoryID: 1},
	}}, stubCategoryRepo{})
	handler.NewProductHandler(uc).RegisterRoutes(e, testIssuer())

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "data")

	var list usecase.ProductListView
	assert.NoError(t, json.Unmarshal(body["data"], &list))
	assert.Len(t, list.Products, 1)
	assert.Equal(t, "AAA111", list.Products[0].SKU)
}

func TestOrderHandler_ListUsesDataEnvelope(t *testing.T) {
	e := echo.New()
	issuer := testIssuer()

	tx := stubTxManager{repos: stubTxRepos{
		orders: stubOrderRepo{orders: []model.Order{
			{ID: "order-1", UserID: "user-1", Status: model.OrderStatusWaitingPayment, TotalAmount: 600, TotalDiscountedAmount: 600},
		}},
		orderItems: stubOrderItemRepo{},
	}}
	uc := usecase.NewOrderUsecase(tx, stubIDGen{}, stubClock{})
	handler.NewOrderHandler(uc).RegisterRoutes(e, issuer)

	token, _, err := issuer.Issue("user-1", false, auth.TokenKindAccess, time.Now())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "data")

	var list usecase.OrderListView
	assert.NoError(t, json.Unmarshal(body["data"], &list))
	assert.Len(t, list.Orders, 1)
	assert.Equal(t, "order-1", list.Orders[0].ID)
}
