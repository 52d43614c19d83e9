package model

import "time"

// 注文時に適用するクーポン。expirationがnilなら無期限。
type Coupon struct {
	Code string `gorm:"type:varchar(64);primaryKey" json:"code"`

	Expiration         *time.Time `json:"expiration"`
	DiscountPercentage float64    `gorm:"not null" json:"discount_percentage"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 判定時刻nowで使えるクーポンか
func (c Coupon) IsValidAt(now time.Time) bool {
	return c.Expiration == nil || !c.Expiration.Before(now)
}
