package handler

import (
	"net/http"
	"time"

	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// クーポン登録（管理者のみ）。検証はチェックアウト側で行う。
type CouponHandler struct {
	uc *usecase.CouponUsecase
}

func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

type CouponCreateRequest struct {
	Code               string     `json:"code"`
	Expiration         *time.Time `json:"expiration"`
	DiscountPercentage float64    `json:"discount_percentage"`
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo, issuer auth.TokenIssuer) {
	g := e.Group("/v1/coupons")
	g.Use(middleware.AuthJWT(issuer))
	g.Use(middleware.AdminGuard())

	g.POST("", h.create)
}

func (h *CouponHandler) create(c echo.Context) error {
	var req CouponCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateCouponInput{
		Code:               req.Code,
		Expiration:         req.Expiration,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, DataResponse{Data: out})
}
