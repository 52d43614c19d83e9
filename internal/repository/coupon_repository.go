package repository

import (
	"app/internal/domain/model"
	"context"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (model.Coupon, error)
	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
}
