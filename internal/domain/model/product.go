package model

import "time"

type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}

// SKUが主キー。大文字英数字3〜24文字に正規化して保存する。
type Product struct {
	SKU string `gorm:"type:varchar(24);primaryKey" json:"sku"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Header      string `gorm:"type:varchar(255);not null" json:"header"`
	Description string `gorm:"type:text;not null" json:"description"`

	//商品画像のストレージキー（無い商品もある）
	CoverImageKey *string `gorm:"type:varchar(255)" json:"cover_image_key"`

	//最小通貨単位の整数（円やセント）
	UnitPrice int64 `gorm:"not null" json:"unit_price"`

	//商品自体の割引率 [0, 100)
	DiscountPercentage float64 `gorm:"not null;default:0" json:"discount_percentage"`

	CategoryID int64 `gorm:"not null;index" json:"category_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
