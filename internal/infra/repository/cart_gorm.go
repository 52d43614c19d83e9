package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func (r *CartGormRepository) Create(ctx context.Context, cart model.Cart) (model.Cart, error) {
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Cart{}, repo.ErrConflict
		}
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ユーザーのアクティブ（未チェックアウト）カートを取得
func (r *CartGormRepository) FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND order_id IS NULL", userID).
		Order("created_at desc").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// IPに紐づくアクティブカートを取得。ユーザー所有済みでも返す（呼び出し側が判定する）。
func (r *CartGormRepository) FindActiveByOriginIP(ctx context.Context, originIP string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("origin_ip = ? AND order_id IS NULL", originIP).
		Order("created_at desc").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 匿名カートをユーザーへ付け替える。origin_ipはNULLに戻す。
func (r *CartGormRepository) AssignToUser(ctx context.Context, cartID string, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"user_id":   userID,
			"origin_ip": nil,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// order_idがまだ入っていない行だけ更新する。
// RowsAffected=0は別のチェックアウトに先を越されたということ。
func (r *CartGormRepository) LinkOrder(ctx context.Context, cartID string, orderID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ? AND order_id IS NULL", cartID).
		Update("order_id", orderID)

	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return repo.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrConflict
	}
	return nil
}

// カートと明細を削除
func (r *CartGormRepository) Delete(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", cartID).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
