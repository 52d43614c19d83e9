package model

import "time"

// 注文時点の商品スナップショット。
// 後から商品マスタを変更しても過去の注文は変わらない。
type OrderItem struct {
	OrderID string `gorm:"type:uuid;primaryKey" json:"order_id"`
	SKU     string `gorm:"type:varchar(24);primaryKey" json:"sku"`

	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	Header        string  `gorm:"type:varchar(255);not null" json:"header"`
	Description   string  `gorm:"type:text;not null" json:"description"`
	CoverImageKey *string `gorm:"type:varchar(255)" json:"cover_image_key"`

	UnitPrice          int64   `gorm:"not null" json:"unit_price"`
	Quantity           int64   `gorm:"not null" json:"quantity"`
	DiscountPercentage float64 `gorm:"not null;default:0" json:"discount_percentage"`
	CategoryName       string  `gorm:"type:varchar(255);not null" json:"category_name"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
