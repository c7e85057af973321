package repository

import (
	"context"

	"foh/internal/domain/model"
	repo "foh/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("position asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]model.OrderItem, 0, len(items))
	for i, it := range items {
		it.ID = 0
		it.OrderID = orderID
		it.Position = i
		rows = append(rows, it)
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error
}

// 行単位のUPDATE。配列全体の読み書きをしないので厨房同士は衝突しない。
func (r *OrderItemGormRepository) SetPrepared(ctx context.Context, orderID int64, position int, prepared bool) error {
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ? AND position = ?", orderID, position).
		Update("prepared", prepared)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderItemGormRepository) CountUnprepared(ctx context.Context, orderID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ? AND prepared = ?", orderID, false).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
