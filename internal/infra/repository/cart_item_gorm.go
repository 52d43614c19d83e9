package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 数量を置き換えるupsert。(cart_id, product_sku)の複合キーで同一商品は1行。
func (r *CartItemGormRepository) SetQuantity(ctx context.Context, cartID string, productSKU string, qty int64) error {
	if qty <= 0 {
		return errors.New("invalid quantity")
	}

	now := time.Now()
	item := model.CartItem{
		CartID:     cartID,
		ProductSKU: productSKU,
		Quantity:   qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_sku"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": qty, "updated_at": now}),
		}).
		Create(&item).Error
}

// 明細を削除
func (r *CartItemGormRepository) Delete(ctx context.Context, cartID string, productSKU string) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_sku = ?", cartID, productSKU).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
