package usecase

import "app/internal/domain/model"

// カートの閲覧・変更の認可判定。状態は持たない。
//
// user_idが空のカートは匿名カートで、匿名リクエストからも見える。
// ユーザー所有のカートは本人しか見えない。

// requesterIDはnilなら匿名リクエスト
func CanViewCart(cart model.Cart, requesterID *string) bool {
	if cart.UserID == nil {
		return true
	}
	return requesterID != nil && *cart.UserID == *requesterID
}

// 変更は閲覧できることに加えて、ユーザー所有なら認証必須
func CanMutateCart(cart model.Cart, requesterID *string) bool {
	if cart.UserID != nil && requesterID == nil {
		return false
	}
	return CanViewCart(cart, requesterID)
}
