package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// OrderUsecase はカート→注文の変換を担当する。
// チェックアウトは必ず1トランザクションで、全部成功か全部失敗。
type OrderUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, idGen: idGen, clock: clock}
}

type PlaceOrderInput struct {
	CouponCode *string
}

type OrderItemView struct {
	SKU                string  `json:"sku"`
	Name               string  `json:"name"`
	Header             string  `json:"header"`
	Description        string  `json:"description"`
	CoverImageKey      *string `json:"cover_image_key"`
	UnitPrice          int64   `json:"unit_price"`
	Quantity           int64   `json:"quantity"`
	DiscountPercentage float64 `json:"discount_percentage"`
	CategoryName       string  `json:"category_name"`
}

type OrderView struct {
	ID                    string          `json:"id"`
	Status                string          `json:"status"`
	TotalAmount           int64           `json:"total_amount"`
	TotalDiscountedAmount int64           `json:"total_discounted_amount"`
	DiscountPercentage    float64         `json:"discount_percentage"`
	CouponCode            *string         `json:"coupon_code"`
	CreatedAt             time.Time       `json:"created_at"`
	Items                 []OrderItemView `json:"items"`
}

// PlaceOrder はチェックアウト。
//
//  1. ユーザーのアクティブカートを引く（無ければ404）
//  2. 空カートは422で拒否する
//  3. クーポンを解決する（無効なら割引0のまま通す）
//  4. チェックアウト時点の商品価格で小計を計算する
//  5. 注文＋スナップショット明細を保存する
//  6. カートに注文を紐づける。同じカートへの同時チェックアウトは
//     order_idの一意制約とNULLガード付き更新で片方だけ成功する
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (OrderView, error) {
	var out OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "no cart found for user")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusUnprocessableEntity, "cart is empty")
		}

		now := u.clock.Now()

		discount, appliedCode, err := ResolveCoupon(ctx, r.Coupons(), in.CouponCode, now)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//チェックアウト時点の商品データで小計とスナップショットを作る
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var subtotal int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindBySKU(ctx, ci.ProductSKU)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			cat, err := r.Categories().FindByID(ctx, p.CategoryID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			subtotal += LineTotal(p, ci.Quantity)

			orderItems = append(orderItems, model.OrderItem{
				SKU:                p.SKU,
				Name:               p.Name,
				Header:             p.Header,
				Description:        p.Description,
				CoverImageKey:      p.CoverImageKey,
				UnitPrice:          p.UnitPrice,
				Quantity:           ci.Quantity,
				DiscountPercentage: p.DiscountPercentage,
				CategoryName:       cat.Name,
				CreatedAt:          now,
			})
		}

		order := model.Order{
			ID:                    u.idGen.NewID(),
			UserID:                userID,
			Status:                model.OrderStatusWaitingPayment,
			TotalAmount:           subtotal,
			TotalDiscountedAmount: ApplyCoupon(subtotal, discount),
			DiscountPercentage:    discount,
			CouponCode:            appliedCode,
			CreatedAt:             now,
			UpdatedAt:             now,
		}

		created, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, created.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを消費する。先を越されていたら409で、txごと巻き戻る。
		if err := r.Carts().LinkOrder(ctx, cart.ID, created.ID); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return NewHTTPError(http.StatusConflict, "cart is already checked out")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderView(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderView{}, err
	}
	return out, nil
}

type OrderListView struct {
	Orders    []OrderView `json:"orders"`
	Page      int         `json:"page"`
	Limit     int         `json:"limit"`
	TotalRows int64       `json:"total_rows"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, page int, limit int) (OrderListView, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	var out OrderListView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		views := make([]OrderView, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			views = append(views, toOrderView(o, items))
		}

		out = OrderListView{Orders: views, Page: page, Limit: limit, TotalRows: total}
		return nil
	})

	if err != nil {
		return OrderListView{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID string, orderID string) (OrderView, error) {
	var out OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//他人の注文は「存在しない扱い」にする
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderView(o, items)
		return nil
	})

	if err != nil {
		return OrderView{}, err
	}
	return out, nil
}

func toOrderView(o model.Order, items []model.OrderItem) OrderView {
	views := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		views = append(views, OrderItemView{
			SKU:                it.SKU,
			Name:               it.Name,
			Header:             it.Header,
			Description:        it.Description,
			CoverImageKey:      it.CoverImageKey,
			UnitPrice:          it.UnitPrice,
			Quantity:           it.Quantity,
			DiscountPercentage: it.DiscountPercentage,
			CategoryName:       it.CategoryName,
		})
	}

	return OrderView{
		ID:                    o.ID,
		Status:                string(o.Status),
		TotalAmount:           o.TotalAmount,
		TotalDiscountedAmount: o.TotalDiscountedAmount,
		DiscountPercentage:    o.DiscountPercentage,
		CouponCode:            o.CouponCode,
		CreatedAt:             o.CreatedAt,
		Items:                 views,
	}
}
