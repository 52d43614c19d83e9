package repository

import (
	"app/internal/domain/model"
	"context"
)

// 「アクティブ」= order_idがまだ入っていないカート。
type CartRepository interface {
	Create(ctx context.Context, cart model.Cart) (model.Cart, error)
	FindByID(ctx context.Context, cartID string) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error)

	//匿名カート（user_idがnil）をIPで引く
	FindActiveByOriginIP(ctx context.Context, originIP string) (model.Cart, error)

	//匿名カートをユーザーに付け替える。origin_ipは外す。
	AssignToUser(ctx context.Context, cartID string, userID string) error

	//order_idがnilの行だけ更新する。先を越されていたらErrConflict。
	LinkOrder(ctx context.Context, cartID string, orderID string) error

	Delete(ctx context.Context, cartID string) error
}
