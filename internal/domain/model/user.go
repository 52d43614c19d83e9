package model

import "time"

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	//小文字に正規化して保存する
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`

	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
