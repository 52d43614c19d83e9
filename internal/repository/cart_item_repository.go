package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)

	//PUTの意味論。既存行は数量を置き換え、無ければ作る。
	SetQuantity(ctx context.Context, cartID string, productSKU string, qty int64) error

	Delete(ctx context.Context, cartID string, productSKU string) error
}
