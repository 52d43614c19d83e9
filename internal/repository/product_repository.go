package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反など、同時実行でぶつかった場合
var ErrConflict = errors.New("conflict")

// 一覧検索
type ProductListQuery struct {
	Page  int
	Limit int
	Name  string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindBySKU(ctx context.Context, sku string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, sku string) error
}
