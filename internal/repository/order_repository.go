package repository

import (
	"context"
	"errors"

	"foh/internal/domain/model"
)

// 楽観ロックの版数が合わない（並行編集の衝突）
var ErrVersionConflict = errors.New("version conflict")

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// テーブルの「アクティブな注文」= 未精算のうち最新に作られた1件。
	// 未精算が複数ある場合は CreatedAt 降順・ID 降順で決定的に選ぶ。
	FindActiveByTable(ctx context.Context, tableID int64) (model.Order, bool, error)

	// テーブルの未精算注文（CreatedAt降順）
	ListUnpaidByTable(ctx context.Context, tableID int64) ([]model.Order, error)
	CountUnpaidByTable(ctx context.Context, tableID int64) (int64, error)

	// 厨房キュー：指定ステータスの注文をCreatedAt昇順（先入れ先出し）で
	ListByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error)

	ListAll(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// 合計更新＋版数インクリメント。expectedVersionが一致しない場合はErrVersionConflict。
	UpdateTotalIfVersion(ctx context.Context, orderID int64, totalCents int64, expectedVersion int) error
}
