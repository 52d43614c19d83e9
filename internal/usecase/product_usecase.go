package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// 商品のレスポンス。category_nameはここで引いて埋める。
type ProductView struct {
	SKU                string  `json:"sku"`
	Name               string  `json:"name"`
	Header             string  `json:"header"`
	Description        string  `json:"description"`
	CoverImageKey      *string `json:"cover_image_key"`
	UnitPrice          int64   `json:"unit_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountedPrice    int64   `json:"discounted_price"`
	CategoryID         int64   `json:"category_id"`
	CategoryName       string  `json:"category_name"`
}

type ProductListView struct {
	Products  []ProductView `json:"products"`
	Page      int           `json:"page"`
	Limit     int           `json:"limit"`
	TotalRows int64         `json:"total_rows"`
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page  int
	Limit int
	Name  string
}

type CreateProductInput struct {
	SKU                string
	Name               string
	Header             string
	Description        string
	CoverImageKey      *string
	UnitPrice          int64
	DiscountPercentage float64
	CategoryID         int64
}

// PATCH用。nilのフィールドは変更しない。
type UpdateProductInput struct {
	Name               *string
	Header             *string
	Description        *string
	CoverImageKey      *string
	UnitPrice          *int64
	DiscountPercentage *float64
	CategoryID         *int64
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListView, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 30
	}

	products, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Name:  in.Name,
	})
	if err != nil {
		return ProductListView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		v, err := u.buildProductView(ctx, p)
		if err != nil {
			return ProductListView{}, err
		}
		views = append(views, v)
	}

	return ProductListView{
		Products:  views,
		Page:      in.Page,
		Limit:     in.Limit,
		TotalRows: total,
	}, nil
}

func (u *ProductUsecase) GetBySKU(ctx context.Context, sku string) (ProductView, error) {
	p, err := u.productRepo.FindBySKU(ctx, sku)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildProductView(ctx, p)
}

// Create は管理者用。SKUは大文字英数字3〜24文字に正規化する。
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (ProductView, error) {
	sku, err := validator.NormalizeSKU(in.SKU)
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid sku")
	}
	if in.UnitPrice < 0 {
		return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid unit_price")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage >= 100 {
		return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid discount_percentage")
	}
	if in.Name == "" {
		return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid name")
	}

	//存在するカテゴリか
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid category_id")
		}
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		SKU:                sku,
		Name:               in.Name,
		Header:             in.Header,
		Description:        in.Description,
		CoverImageKey:      in.CoverImageKey,
		UnitPrice:          in.UnitPrice,
		DiscountPercentage: in.DiscountPercentage,
		CategoryID:         in.CategoryID,
	})
	if errors.Is(err, repo.ErrConflict) {
		return ProductView{}, NewHTTPError(http.StatusConflict, "sku already exists")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildProductView(ctx, created)
}

// Update は管理者用の部分更新
func (u *ProductUsecase) Update(ctx context.Context, sku string, in UpdateProductInput) (ProductView, error) {
	p, err := u.productRepo.FindBySKU(ctx, sku)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Header != nil {
		p.Header = *in.Header
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.CoverImageKey != nil {
		p.CoverImageKey = in.CoverImageKey
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice < 0 {
			return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid unit_price")
		}
		p.UnitPrice = *in.UnitPrice
	}
	if in.DiscountPercentage != nil {
		if *in.DiscountPercentage < 0 || *in.DiscountPercentage >= 100 {
			return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid discount_percentage")
		}
		p.DiscountPercentage = *in.DiscountPercentage
	}
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ProductView{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid category_id")
			}
			return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p.CategoryID = *in.CategoryID
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductView{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildProductView(ctx, p)
}

func (u *ProductUsecase) Delete(ctx context.Context, sku string) error {
	if err := u.productRepo.Delete(ctx, sku); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid name")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) buildProductView(ctx context.Context, p model.Product) (ProductView, error) {
	cat, err := u.categoryRepo.FindByID(ctx, p.CategoryID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductView{
		SKU:                p.SKU,
		Name:               p.Name,
		Header:             p.Header,
		Description:        p.Description,
		CoverImageKey:      p.CoverImageKey,
		UnitPrice:          p.UnitPrice,
		DiscountPercentage: p.DiscountPercentage,
		DiscountedPrice:    DiscountedUnitPrice(p),
		CategoryID:         p.CategoryID,
		CategoryName:       cat.Name,
	}, nil
}
