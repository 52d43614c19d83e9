package model

import "time"

type OrderStatus string

const (
	OrderStatusWaitingPayment OrderStatus = "WAITING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

// チェックアウトで一度だけ作られる確定レコード。
// total_amountはクーポン適用前、total_discounted_amountは適用後。
type Order struct {
	ID     string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	TotalAmount           int64 `gorm:"not null" json:"total_amount"`
	TotalDiscountedAmount int64 `gorm:"not null" json:"total_discounted_amount"`

	//クーポン由来の割引率。クーポン無しなら0。
	DiscountPercentage float64 `gorm:"not null;default:0" json:"discount_percentage"`

	//有効だったクーポンのコードだけ記録する
	CouponCode *string `gorm:"type:varchar(64)" json:"coupon_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
