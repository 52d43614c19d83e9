package model

import "time"

// カートの明細。(cart_id, product_sku)の複合主キーで同一商品は1行。
// quantityは常に1以上。0以下は削除で表現する。
type CartItem struct {
	CartID     string `gorm:"type:uuid;primaryKey" json:"cart_id"`
	ProductSKU string `gorm:"type:varchar(24);primaryKey;column:product_sku" json:"product_sku"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
