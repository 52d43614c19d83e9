package model

import "time"

// 所有者はユーザーか接続元IPのどちらか。
// user_idとorigin_ipの両方が入るのはマージ処理の途中だけ。
// order_idが入ったカートは確定済みで、以後変更できない。
type Cart struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID   *string `gorm:"type:uuid;index" json:"user_id"`
	OriginIP *string `gorm:"type:varchar(45);index" json:"origin_ip"`

	//カート→注文は1対1。uniqueIndexが二重チェックアウトを防ぐ。
	OrderID *string `gorm:"type:uuid;uniqueIndex" json:"order_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文に紐づいたカートは終端状態
func (c Cart) IsFinalized() bool {
	return c.OrderID != nil
}
