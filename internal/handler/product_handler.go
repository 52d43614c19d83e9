package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /v1/products の公開API＋管理者用の編集API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductCreateRequest struct {
	SKU                string  `json:"sku"`
	Name               string  `json:"name"`
	Header             string  `json:"header"`
	Description        string  `json:"description"`
	CoverImageKey      *string `json:"cover_image_key"`
	UnitPrice          int64   `json:"unit_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	CategoryID         int64   `json:"category_id"`
}

type ProductPatchRequest struct {
	Name               *string  `json:"name"`
	Header             *string  `json:"header"`
	Description        *string  `json:"description"`
	CoverImageKey      *string  `json:"cover_image_key"`
	UnitPrice          *int64   `json:"unit_price"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	CategoryID         *int64   `json:"category_id"`
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, issuer auth.TokenIssuer) {
	e.GET("/v1/products", h.list)
	e.GET("/v1/products/:sku", h.detail)
	e.GET("/v1/categories", h.listCategories)

	//編集は管理者のみ
	admin := e.Group("/v1")
	admin.Use(middleware.AuthJWT(issuer))
	admin.Use(middleware.AdminGuard())

	admin.POST("/products", h.create)
	admin.PATCH("/products/:sku", h.patch)
	admin.DELETE("/products/:sku", h.delete)
	admin.POST("/categories", h.createCategory)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（default 30）
	limit := 30
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Page:  page,
		Limit: limit,
		Name:  c.QueryParam("name"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *ProductHandler) detail(c echo.Context) error {
	out, err := h.uc.GetBySKU(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *ProductHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		SKU:                req.SKU,
		Name:               req.Name,
		Header:             req.Header,
		Description:        req.Description,
		CoverImageKey:      req.CoverImageKey,
		UnitPrice:          req.UnitPrice,
		DiscountPercentage: req.DiscountPercentage,
		CategoryID:         req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, DataResponse{Data: out})
}

func (h *ProductHandler) patch(c echo.Context) error {
	var req ProductPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("sku"), usecase.UpdateProductInput{
		Name:               req.Name,
		Header:             req.Header,
		Description:        req.Description,
		CoverImageKey:      req.CoverImageKey,
		UnitPrice:          req.UnitPrice,
		DiscountPercentage: req.DiscountPercentage,
		CategoryID:         req.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *ProductHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("sku")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) createCategory(c echo.Context) error {
	var req CategoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, DataResponse{Data: out})
}
