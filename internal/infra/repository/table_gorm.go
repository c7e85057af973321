package repository

import (
	"context"
	"errors"

	"foh/internal/domain/model"
	repo "foh/internal/repository"

	"gorm.io/gorm"
)

type TableGormRepository struct {
	db *gorm.DB
}

func NewTableGormRepository(db *gorm.DB) *TableGormRepository {
	return &TableGormRepository{db: db}
}

func (r *TableGormRepository) List(ctx context.Context) ([]model.Table, error) {
	var items []model.Table
	err := r.db.WithContext(ctx).
		Order("number asc").
		Find(&items).Error
	if err != nil {
		return []model.Table{}, err
	}
	return items, nil
}

func (r *TableGormRepository) ListByOccupancy(ctx context.Context, occupied bool) ([]model.Table, error) {
	var items []model.Table
	err := r.db.WithContext(ctx).
		Where("is_occupied = ?", occupied).
		Order("number asc").
		Find(&items).Error
	if err != nil {
		return []model.Table{}, err
	}
	return items, nil
}

func (r *TableGormRepository) FindByID(ctx context.Context, tableID int64) (model.Table, error) {
	var t model.Table
	err := r.db.WithContext(ctx).Where("id = ?", tableID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Table{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Table{}, err
	}
	return t, nil
}

func (r *TableGormRepository) SetOccupied(ctx context.Context, tableID int64, occupied bool) error {
	res := r.db.WithContext(ctx).Model(&model.Table{}).
		Where("id = ?", tableID).
		Update("is_occupied", occupied)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
