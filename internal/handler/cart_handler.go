package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /v1/cartsのHTTP。匿名でも使えるのでOptionalAuthJWTを通す。
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type SetCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, issuer auth.TokenIssuer) {
	g := e.Group("/v1/carts")
	g.Use(middleware.OptionalAuthJWT(issuer))

	g.POST("", h.create)
	g.GET("/current", h.current)
	g.GET("/:id", h.getByID)
	g.PUT("/:id/items/:sku", h.putItem)
	g.DELETE("/:id/items/:sku", h.deleteItem)

	//マージはログイン必須
	sync := e.Group("/v1/carts/sync_ip_to_user")
	sync.Use(middleware.AuthJWT(issuer))
	sync.POST("", h.syncIPToUser)
}

func (h *CartHandler) create(c echo.Context) error {
	out, err := h.uc.CreateCart(c.Request().Context(), optionalUserID(c), c.RealIP())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, DataResponse{Data: out})
}

func (h *CartHandler) current(c echo.Context) error {
	out, err := h.uc.GetCurrentCart(c.Request().Context(), optionalUserID(c), c.RealIP())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *CartHandler) getByID(c echo.Context) error {
	out, err := h.uc.GetCartByID(c.Request().Context(), c.Param("id"), optionalUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *CartHandler) putItem(c echo.Context) error {
	var req SetCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SetItem(c.Request().Context(), c.Param("id"), c.Param("sku"), optionalUserID(c), usecase.SetCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	out, err := h.uc.RemoveItem(c.Request().Context(), c.Param("id"), c.Param("sku"), optionalUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *CartHandler) syncIPToUser(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.SyncIPToUser(c.Request().Context(), c.RealIP(), userID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
