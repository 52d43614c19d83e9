package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// CartUsecase はカートの作成・取得・所有権の付け替えを担当する。
// アクティブなカートはユーザーにつき1つ、匿名ならIPにつき1つ。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	tx           repo.TransactionManager
	idGen        IDGenerator
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	tx repo.TransactionManager,
	idGen IDGenerator,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		tx:           tx,
		idGen:        idGen,
	}
}

// カートのレスポンス。割引後価格はここで計算する（エンティティには持たせない）。
type CartItemView struct {
	ProductSKU         string  `json:"product_sku"`
	Name               string  `json:"name"`
	Header             string  `json:"header"`
	UnitPrice          int64   `json:"unit_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountedPrice    int64   `json:"discounted_price"`
	Quantity           int64   `json:"quantity"`
	LineTotal          int64   `json:"line_total"`
}

type CartView struct {
	ID       string         `json:"id"`
	UserID   *string        `json:"user_id,omitempty"`
	Items    []CartItemView `json:"items"`
	Subtotal int64          `json:"subtotal"`
}

type SetCartItemInput struct {
	Quantity int64
}

// CreateCart は新しい空カートを作る。
// 認証済みユーザーが既にアクティブなカートを持っていたら409。
func (u *CartUsecase) CreateCart(ctx context.Context, requesterID *string, originIP string) (CartView, error) {
	if requesterID != nil {
		_, err := u.cartRepo.FindActiveByUserID(ctx, *requesterID)
		if err == nil {
			return CartView{}, NewHTTPError(http.StatusConflict, "user is already attached to a cart")
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	cart := model.Cart{
		ID:     u.idGen.NewID(),
		UserID: requesterID,
	}
	if requesterID == nil {
		cart.OriginIP = &originIP
	}

	created, err := u.cartRepo.Create(ctx, cart)
	if errors.Is(err, repo.ErrConflict) {
		return CartView{}, NewHTTPError(http.StatusConflict, "user is already attached to a cart")
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartView(ctx, created)
}

// GetCurrentCart は呼び出し元のカートを返す。
// 認証済みならユーザーのカート、匿名なら接続元IPのカート。
// 匿名リクエストがユーザー所有のカートを拾うことはない。
func (u *CartUsecase) GetCurrentCart(ctx context.Context, requesterID *string, originIP string) (CartView, error) {
	var cart model.Cart
	var err error

	if requesterID != nil {
		cart, err = u.cartRepo.FindActiveByUserID(ctx, *requesterID)
	} else {
		cart, err = u.cartRepo.FindActiveByOriginIP(ctx, originIP)
		if err == nil && cart.UserID != nil {
			//IPが他人のカートを指している：匿名には見せない
			err = repo.ErrNotFound
		}
	}

	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewHTTPError(http.StatusNotFound, "no cart found")
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartView(ctx, cart)
}

// GetCartByID はIDでカートを引く。他人のカートは401。
func (u *CartUsecase) GetCartByID(ctx context.Context, cartID string, requesterID *string) (CartView, error) {
	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewHTTPError(http.StatusNotFound, "no cart found")
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !CanViewCart(cart, requesterID) {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "permission denied")
	}

	return u.buildCartView(ctx, cart)
}

// SetItem は明細のupsert（PUT）。数量は置き換え。
// 注文済みカートへの変更は409で拒否する。
func (u *CartUsecase) SetItem(ctx context.Context, cartID string, sku string, requesterID *string, in SetCartItemInput) (CartView, error) {
	cart, err := u.mutableCart(ctx, cartID, requesterID)
	if err != nil {
		return CartView{}, err
	}

	if in.Quantity < 1 {
		return CartView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid quantity")
	}

	if _, err := u.productRepo.FindBySKU(ctx, sku); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartView{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.SetQuantity(ctx, cart.ID, sku, in.Quantity); err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartView(ctx, cart)
}

// RemoveItem は明細を削除する
func (u *CartUsecase) RemoveItem(ctx context.Context, cartID string, sku string, requesterID *string) (CartView, error) {
	cart, err := u.mutableCart(ctx, cartID, requesterID)
	if err != nil {
		return CartView{}, err
	}

	if err := u.cartItemRepo.Delete(ctx, cart.ID, sku); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartView{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartView(ctx, cart)
}

// SyncIPToUser は接続元IPの匿名カートをログイン済みユーザーへマージする。
//
//   - IPカートが無ければ404
//   - IPカートが既にユーザー所有なら401
//   - ユーザーにカートが無ければIPカートをそのまま付け替える（IDは変わらない）
//   - ユーザーに既存カートがあれば明細をそちらへ寄せ、空になったIPカートを消す
//
// 全体を1トランザクションで行う。
func (u *CartUsecase) SyncIPToUser(ctx context.Context, originIP string, userID string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ipCart, err := r.Carts().FindActiveByOriginIP(ctx, originIP)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "no cart found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if ipCart.UserID != nil {
			return NewHTTPError(http.StatusUnauthorized, "cart is already attached to an user")
		}

		userCart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			//ユーザー側にカートが無いので付け替えだけで済む
			if err := r.Carts().AssignToUser(ctx, ipCart.ID, userID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.mergeItems(ctx, r, ipCart.ID, userCart.ID); err != nil {
			return err
		}

		//明細を移し終えたIPカートを消す
		if err := r.Carts().Delete(ctx, ipCart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	return err
}

// mergeItems はfromの明細をtoへ寄せる。
// 両方に同じSKUがある場合の数量は合算（どちらかを黙って捨てない）。
func (u *CartUsecase) mergeItems(ctx context.Context, r repo.TxRepos, fromCartID string, toCartID string) error {
	fromItems, err := r.CartItems().ListByCartID(ctx, fromCartID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	toItems, err := r.CartItems().ListByCartID(ctx, toCartID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing := make(map[string]int64, len(toItems))
	for _, it := range toItems {
		existing[it.ProductSKU] = it.Quantity
	}

	for _, it := range fromItems {
		qty := it.Quantity + existing[it.ProductSKU]
		if err := r.CartItems().SetQuantity(ctx, toCartID, it.ProductSKU, qty); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

// 変更対象のカートを取り出す共通処理。404 / 401 / 409をここで判定する。
func (u *CartUsecase) mutableCart(ctx context.Context, cartID string, requesterID *string) (model.Cart, error) {
	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "no cart found")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !CanMutateCart(cart, requesterID) {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "permission denied")
	}

	if cart.IsFinalized() {
		return model.Cart{}, NewHTTPError(http.StatusConflict, "cart is already checked out")
	}

	return cart, nil
}

// 明細と商品マスタからレスポンスを組み立てる
func (u *CartUsecase) buildCartView(ctx context.Context, cart model.Cart) (CartView, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	view := CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]CartItemView, 0, len(items)),
	}

	for _, it := range items {
		p, err := u.productRepo.FindBySKU(ctx, it.ProductSKU)
		if errors.Is(err, repo.ErrNotFound) {
			//商品が消えた明細は表示しない
			continue
		}
		if err != nil {
			return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		line := LineTotal(p, it.Quantity)
		view.Items = append(view.Items, CartItemView{
			ProductSKU:         p.SKU,
			Name:               p.Name,
			Header:             p.Header,
			UnitPrice:          p.UnitPrice,
			DiscountPercentage: p.DiscountPercentage,
			DiscountedPrice:    DiscountedUnitPrice(p),
			Quantity:           it.Quantity,
			LineTotal:          line,
		})
		view.Subtotal += line
	}

	return view, nil
}
