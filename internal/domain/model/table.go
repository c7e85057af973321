package model

import "time"

// Table は物理席。IsOccupiedは「未精算の注文が1件以上ある」ことと一致させる。
// フラグの更新は注文提出（true）と全注文精算（false）の2箇所だけ。
type Table struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Number     int       `gorm:"not null;uniqueIndex" json:"number"`
	IsOccupied bool      `gorm:"not null;default:false" json:"is_occupied"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
