package server

import (
	"app/internal/handler"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// Handlers はルート登録に必要なハンドラ一式
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Coupon  *handler.CouponHandler
	Address *handler.AddressHandler
}

// RegisterRoutes は全ハンドラのルートをまとめて登録する
func RegisterRoutes(e *echo.Echo, h Handlers, issuer auth.TokenIssuer) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, issuer)
	h.Cart.RegisterRoutes(e, issuer)
	h.Order.RegisterRoutes(e, issuer)
	h.Coupon.RegisterRoutes(e, issuer)
	h.Address.RegisterRoutes(e, issuer)
}
