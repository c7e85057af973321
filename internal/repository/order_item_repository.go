package repository

import (
	"context"

	"foh/internal/domain/model"
)

type OrderItemRepository interface {
	// Positionの昇順
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	// 再提出時の全行入れ替え用
	DeleteByOrderID(ctx context.Context, orderID int64) error
	// 行単位の準備フラグ更新。対象行がなければErrNotFound。
	SetPrepared(ctx context.Context, orderID int64, position int, prepared bool) error
	CountUnprepared(ctx context.Context, orderID int64) (int64, error)
}
