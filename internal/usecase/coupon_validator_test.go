package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResolveCoupon_NoCode(t *testing.T) {
	ctx := context.Background()
	coupons := new(MockCouponRepository)

	discount, code, err := usecase.ResolveCoupon(ctx, coupons, nil, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, float64(0), discount)
	assert.Nil(t, code)

	empty := ""
	discount, code, err = usecase.ResolveCoupon(ctx, coupons, &empty, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, float64(0), discount)
	assert.Nil(t, code)

	//リポジトリには触らない
	coupons.AssertNotCalled(t, "FindByCode")
}

func TestResolveCoupon_UnknownCodeIsIgnored(t *testing.T) {
	ctx := context.Background()
	coupons := new(MockCouponRepository)
	coupons.On("FindByCode", mock.Anything, "NOPE").Return(model.Coupon{}, repo.ErrNotFound)

	discount, code, err := usecase.ResolveCoupon(ctx, coupons, ptr("NOPE"), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, float64(0), discount)
	assert.Nil(t, code)
}

func TestResolveCoupon_ExpiredCodeIsIgnored(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)

	coupons := new(MockCouponRepository)
	coupons.On("FindByCode", mock.Anything, "OLD10").Return(model.Coupon{
		Code:               "OLD10",
		Expiration:         &expired,
		DiscountPercentage: 10,
	}, nil)

	discount, code, err := usecase.ResolveCoupon(ctx, coupons, ptr("OLD10"), now)
	assert.NoError(t, err)
	assert.Equal(t, float64(0), discount)
	assert.Nil(t, code)
}

func TestResolveCoupon_ValidCode(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	coupons := new(MockCouponRepository)
	coupons.On("FindByCode", mock.Anything, "SAVE10").Return(model.Coupon{
		Code:               "SAVE10",
		Expiration:         &future,
		DiscountPercentage: 10,
	}, nil)

	discount, code, err := usecase.ResolveCoupon(ctx, coupons, ptr("SAVE10"), now)
	assert.NoError(t, err)
	assert.Equal(t, float64(10), discount)
	assert.NotNil(t, code)
	assert.Equal(t, "SAVE10", *code)
}

func TestResolveCoupon_NilExpirationNeverExpires(t *testing.T) {
	ctx := context.Background()
	coupons := new(MockCouponRepository)
	coupons.On("FindByCode", mock.Anything, "FOREVER").Return(model.Coupon{
		Code:               "FOREVER",
		DiscountPercentage: 25,
	}, nil)

	discount, code, err := usecase.ResolveCoupon(ctx, coupons, ptr("FOREVER"), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, float64(25), discount)
	assert.Equal(t, "FOREVER", *code)
}
