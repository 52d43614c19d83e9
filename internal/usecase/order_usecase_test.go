package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderFixture struct {
	tx stubTxManager
	uc *usecase.OrderUsecase
}

var checkoutTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newOrderFixture() orderFixture {
	f := orderFixture{tx: stubTxManager{repos: newStubTxRepos()}}
	f.uc = usecase.NewOrderUsecase(
		f.tx,
		&stubIDGenerator{ids: []string{"order-1"}},
		stubClock{now: checkoutTime},
	)
	return f
}

// カート1つ＋商品2種（割引あり・なし）の標準セットアップ
func (f orderFixture) givenCartWithItems() {
	r := f.tx.repos

	r.carts.On("FindActiveByUserID", mock.Anything, "u1").
		Return(model.Cart{ID: "cart-1", UserID: ptr("u1")}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{
		{CartID: "cart-1", ProductSKU: "FULL200", Quantity: 2},
		{CartID: "cart-1", ProductSKU: "SALE400", Quantity: 1},
	}, nil)

	r.products.On("FindBySKU", mock.Anything, "FULL200").Return(model.Product{
		SKU: "FULL200", Name: "Full", UnitPrice: 200, CategoryID: 1,
	}, nil)
	r.products.On("FindBySKU", mock.Anything, "SALE400").Return(model.Product{
		SKU: "SALE400", Name: "Sale", UnitPrice: 400, DiscountPercentage: 50, CategoryID: 2,
	}, nil)

	r.categories.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1, Name: "Books"}, nil)
	r.categories.On("FindByID", mock.Anything, int64(2)).Return(model.Category{ID: 2, Name: "Games"}, nil)
}

func (f orderFixture) givenPersistenceSucceeds() {
	r := f.tx.repos

	r.orders.On("Create", mock.Anything, mock.AnythingOfType("model.Order")).
		Return(model.Order{}, nil)
	r.orderItems.On("CreateBulk", mock.Anything, "order-1", mock.AnythingOfType("[]model.OrderItem")).
		Return(nil)
	r.carts.On("LinkOrder", mock.Anything, "cart-1", "order-1").Return(nil)
}

// =====================
// PlaceOrder
// =====================

func TestOrderUsecase_PlaceOrder_NoCoupon(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.givenCartWithItems()
	f.givenPersistenceSucceeds()

	view, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{})
	assert.NoError(t, err)

	//200×2 ＋ (400の50%引き=200)×1 で小計600。クーポン無しなら両方600。
	assert.Equal(t, "order-1", view.ID)
	assert.Equal(t, string(model.OrderStatusWaitingPayment), view.Status)
	assert.Equal(t, int64(600), view.TotalAmount)
	assert.Equal(t, int64(600), view.TotalDiscountedAmount)
	assert.Nil(t, view.CouponCode)
	assert.Len(t, view.Items, 2)

	//スナップショットにカテゴリ名まで入る
	assert.Equal(t, "Books", view.Items[0].CategoryName)
	assert.Equal(t, "Games", view.Items[1].CategoryName)

	f.tx.repos.carts.AssertExpectations(t)
	f.tx.repos.orders.AssertExpectations(t)
	f.tx.repos.orderItems.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_SumsAllLines(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	r := f.tx.repos

	r.carts.On("FindActiveByUserID", mock.Anything, "u1").
		Return(model.Cart{ID: "cart-1", UserID: ptr("u1")}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{
		{CartID: "cart-1", ProductSKU: "ITEM001", Quantity: 1},
		{CartID: "cart-1", ProductSKU: "ITEM002", Quantity: 2},
		{CartID: "cart-1", ProductSKU: "ITEM003", Quantity: 3},
	}, nil)
	for _, sku := range []string{"ITEM001", "ITEM002", "ITEM003"} {
		r.products.On("FindBySKU", mock.Anything, sku).
			Return(model.Product{SKU: sku, UnitPrice: 100, CategoryID: 1}, nil)
	}
	r.categories.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1, Name: "Misc"}, nil)
	f.givenPersistenceSucceeds()

	view, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{})
	assert.NoError(t, err)

	//100×(1+2+3)
	assert.Equal(t, int64(600), view.TotalAmount)
	assert.Equal(t, int64(600), view.TotalDiscountedAmount)
	assert.Len(t, view.Items, 3)
}

func TestOrderUsecase_PlaceOrder_ValidCoupon(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.givenCartWithItems()
	f.givenPersistenceSucceeds()

	f.tx.repos.coupons.On("FindByCode", mock.Anything, "SAVE10").Return(model.Coupon{
		Code:               "SAVE10",
		DiscountPercentage: 10,
	}, nil)

	view, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{CouponCode: ptr("SAVE10")})
	assert.NoError(t, err)

	assert.Equal(t, int64(600), view.TotalAmount)
	assert.Equal(t, int64(540), view.TotalDiscountedAmount)
	assert.Equal(t, float64(10), view.DiscountPercentage)
	assert.Equal(t, "SAVE10", *view.CouponCode)
}

func TestOrderUsecase_PlaceOrder_ExpiredCouponIgnored(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.givenCartWithItems()
	f.givenPersistenceSucceeds()

	expired := checkoutTime.Add(-time.Hour)
	f.tx.repos.coupons.On("FindByCode", mock.Anything, "OLD10").Return(model.Coupon{
		Code:               "OLD10",
		Expiration:         &expired,
		DiscountPercentage: 10,
	}, nil)

	view, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{CouponCode: ptr("OLD10")})
	assert.NoError(t, err)

	//注文は通るが割引されず、コードも記録されない
	assert.Equal(t, int64(600), view.TotalAmount)
	assert.Equal(t, int64(600), view.TotalDiscountedAmount)
	assert.Equal(t, float64(0), view.DiscountPercentage)
	assert.Nil(t, view.CouponCode)
}

func TestOrderUsecase_PlaceOrder_NoCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.tx.repos.carts.On("FindActiveByUserID", mock.Anything, "u1").
		Return(model.Cart{}, repo.ErrNotFound)

	_, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{})
	assertStatus(t, err, http.StatusNotFound)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	r := f.tx.repos

	r.carts.On("FindActiveByUserID", mock.Anything, "u1").
		Return(model.Cart{ID: "cart-1", UserID: ptr("u1")}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	_, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{})
	assertStatus(t, err, http.StatusUnprocessableEntity)
	r.orders.AssertNotCalled(t, "Create")
}

func TestOrderUsecase_PlaceOrder_ConcurrentCheckoutLoses(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.givenCartWithItems()
	r := f.tx.repos

	r.orders.On("Create", mock.Anything, mock.AnythingOfType("model.Order")).
		Return(model.Order{}, nil)
	r.orderItems.On("CreateBulk", mock.Anything, "order-1", mock.AnythingOfType("[]model.OrderItem")).
		Return(nil)

	//先を越された：order_idのNULLガード更新が0行
	r.carts.On("LinkOrder", mock.Anything, "cart-1", "order-1").Return(repo.ErrConflict)

	_, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{})
	assertStatus(t, err, http.StatusConflict)
}

func TestOrderUsecase_PlaceOrder_ProductGone(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	r := f.tx.repos

	r.carts.On("FindActiveByUserID", mock.Anything, "u1").
		Return(model.Cart{ID: "cart-1", UserID: ptr("u1")}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{
		{CartID: "cart-1", ProductSKU: "GONE99", Quantity: 1},
	}, nil)
	r.products.On("FindBySKU", mock.Anything, "GONE99").
		Return(model.Product{}, repo.ErrNotFound)

	_, err := f.uc.PlaceOrder(ctx, "u1", usecase.PlaceOrderInput{})
	assertStatus(t, err, http.StatusNotFound)
}

// =====================
// GetMyOrder / ListMyOrders
// =====================

func TestOrderUsecase_GetMyOrder_ForeignOrderIsHidden(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.tx.repos.orders.On("FindByID", mock.Anything, "order-1").
		Return(model.Order{ID: "order-1", UserID: "owner"}, nil)

	_, err := f.uc.GetMyOrder(ctx, "intruder", "order-1")
	assertStatus(t, err, http.StatusNotFound)
}

func TestOrderUsecase_ListMyOrders_Pagination(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	r := f.tx.repos

	r.orders.On("ListByUserID", mock.Anything, "u1", 1, 30).Return([]model.Order{
		{ID: "order-1", UserID: "u1", Status: model.OrderStatusWaitingPayment, TotalAmount: 600, TotalDiscountedAmount: 540},
	}, int64(1), nil)
	r.orderItems.On("ListByOrderID", mock.Anything, "order-1").Return([]model.OrderItem{
		{OrderID: "order-1", SKU: "FULL200", Quantity: 2, UnitPrice: 200},
	}, nil)

	//page/limitが不正ならデフォルトに丸める
	out, err := f.uc.ListMyOrders(ctx, "u1", 0, -1)
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 30, out.Limit)
	assert.Equal(t, int64(1), out.TotalRows)
	assert.Len(t, out.Orders, 1)
	assert.Len(t, out.Orders[0].Items, 1)
}
