package usecase_test

import (
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedUnitPrice_NoDiscount(t *testing.T) {
	p := model.Product{UnitPrice: 600, DiscountPercentage: 0}
	assert.Equal(t, int64(600), usecase.DiscountedUnitPrice(p))
}

func TestDiscountedUnitPrice_TruncatesTowardZero(t *testing.T) {
	//199の50%引きは99.5だが端数は切り捨て
	p := model.Product{UnitPrice: 199, DiscountPercentage: 50}
	assert.Equal(t, int64(99), usecase.DiscountedUnitPrice(p))
}

func TestLineTotal_MultipliesDiscountedPrice(t *testing.T) {
	p := model.Product{UnitPrice: 199, DiscountPercentage: 50}
	assert.Equal(t, int64(297), usecase.LineTotal(p, 3))

	full := model.Product{UnitPrice: 200}
	assert.Equal(t, int64(600), usecase.LineTotal(full, 3))
}

func TestApplyCoupon(t *testing.T) {
	//割引0は恒等
	assert.Equal(t, int64(600), usecase.ApplyCoupon(600, 0))

	assert.Equal(t, int64(540), usecase.ApplyCoupon(600, 10))

	//ここでも切り捨て
	assert.Equal(t, int64(99), usecase.ApplyCoupon(199, 50))
}
