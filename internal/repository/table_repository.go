package repository

import (
	"context"

	"foh/internal/domain/model"
)

type TableRepository interface {
	// 席番号の昇順で全件
	List(ctx context.Context) ([]model.Table, error)
	// 占有状態で絞った一覧（席番号の昇順）
	ListByOccupancy(ctx context.Context, occupied bool) ([]model.Table, error)
	FindByID(ctx context.Context, tableID int64) (model.Table, error)
	// 占有フラグの更新。呼び出し側は注文の更新と同一トランザクションで使うこと。
	SetOccupied(ctx context.Context, tableID int64, occupied bool) error
}
