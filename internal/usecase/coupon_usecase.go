package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CouponUsecase は管理者によるクーポン登録。
// 検証（ResolveCoupon）はチェックアウト側で行う。
type CouponUsecase struct {
	couponRepo repo.CouponRepository
}

func NewCouponUsecase(couponRepo repo.CouponRepository) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo}
}

type CreateCouponInput struct {
	Code               string
	Expiration         *time.Time
	DiscountPercentage float64
}

func (u *CouponUsecase) Create(ctx context.Context, in CreateCouponInput) (model.Coupon, error) {
	if in.Code == "" {
		return model.Coupon{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid code")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage >= 100 {
		return model.Coupon{}, NewHTTPError(http.StatusUnprocessableEntity, "invalid discount_percentage")
	}

	created, err := u.couponRepo.Create(ctx, model.Coupon{
		Code:               in.Code,
		Expiration:         in.Expiration,
		DiscountPercentage: in.DiscountPercentage,
	})
	if errors.Is(err, repo.ErrConflict) {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "coupon already exists")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}
