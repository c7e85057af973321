package model

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusPaid      OrderStatus = "Paid"
)

// ステータスは前進のみ（Pending → Ready → Completed → Paid）
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusReady:     1,
	OrderStatusCompleted: 2,
	OrderStatusPaid:      3,
}

// IsValid は既知のステータスかどうかを返す
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo は s→next が前進遷移かどうかを返す。後退は常にfalse。
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	TableID    int64       `gorm:"not null;index" json:"table_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalCents int64       `gorm:"not null" json:"total_cents"`
	Version    int         `gorm:"not null;default:0" json:"version"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// IsSettled は支払い済みかどうか
func (o Order) IsSettled() bool {
	return o.Status == OrderStatusPaid
}

// TotalOf は明細から合計（セント）を計算する
func TotalOf(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPriceCents * it.Quantity
	}
	return total
}

// FormatEuro はセントを "€8.00" 形式にする
func FormatEuro(cents int64) string {
	return fmt.Sprintf("€%d.%02d", cents/100, cents%100)
}
