package model

import "time"

// OrderItem は注文1件の明細行。Positionは注文内の安定した行番号。
type OrderItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index:idx_order_position,unique" json:"order_id"`
	Position            int       `gorm:"not null;index:idx_order_position,unique" json:"position"`
	ProductID           int64     `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceCents      int64     `gorm:"not null" json:"unit_price_cents"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	Notes               string    `gorm:"type:text" json:"notes"`
	Prepared            bool      `gorm:"not null;default:false" json:"prepared"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
