package repository

import (
	"context"
	"errors"

	"foh/internal/domain/model"
	repo "foh/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 未精算のうち最新に作られた1件。複数ある場合の選び方はここで固定する。
func (r *OrderGormRepository) FindActiveByTable(ctx context.Context, tableID int64) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("table_id = ? AND status <> ?", tableID, model.OrderStatusPaid).
		Order("created_at desc").
		Order("id desc").
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderGormRepository) ListUnpaidByTable(ctx context.Context, tableID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("table_id = ? AND status <> ?", tableID, model.OrderStatusPaid).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) CountUnpaidByTable(ctx context.Context, tableID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("table_id = ? AND status <> ?", tableID, model.OrderStatusPaid).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// 厨房は先入れ先出しで捌くのでCreatedAt昇順
func (r *OrderGormRepository) ListByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at asc").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 条件付きUPDATEで楽観ロック。版数が合わなければ1行も更新されない。
func (r *OrderGormRepository) UpdateTotalIfVersion(ctx context.Context, orderID int64, totalCents int64, expectedVersion int) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND version = ?", orderID, expectedVersion).
		Updates(map[string]interface{}{
			"total_cents": totalCents,
			"version":     gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		//存在しないのか版数違いかを区別する
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).
			Where("id = ?", orderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repo.ErrNotFound
		}
		return repo.ErrVersionConflict
	}
	return nil
}
