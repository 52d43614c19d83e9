package usecase

import "app/internal/domain/model"

// 金額計算はすべてここ。状態は持たない。
//
// 端数は常にゼロ方向への切り捨て（整数除算）。金額は最小通貨単位の
// 整数なので、199円の50%引きは99円になる。

// 商品自体の割引を適用した単価
func DiscountedUnitPrice(p model.Product) int64 {
	if p.DiscountPercentage <= 0 {
		return p.UnitPrice
	}
	return int64(float64(p.UnitPrice) * (100 - p.DiscountPercentage) / 100)
}

// 明細1行の小計（割引後単価 × 数量）
func LineTotal(p model.Product, quantity int64) int64 {
	return DiscountedUnitPrice(p) * quantity
}

// クーポン適用後の合計。割引率0ならそのまま返す。
func ApplyCoupon(subtotal int64, discountPercentage float64) int64 {
	if discountPercentage <= 0 {
		return subtotal
	}
	return int64(float64(subtotal) * (100 - discountPercentage) / 100)
}
