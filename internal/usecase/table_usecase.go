package usecase

import (
	"context"
	"net/http"

	"foh/internal/domain/model"
	repo "foh/internal/repository"
)

// テーブル一覧（席番号順）と占有状況
type TableUsecase struct {
	tables repo.TableRepository
}

func NewTableUsecase(tables repo.TableRepository) *TableUsecase {
	return &TableUsecase{tables: tables}
}

type OccupancySummary struct {
	Occupied int `json:"occupied"`
	Free     int `json:"free"`
}

func (u *TableUsecase) List(ctx context.Context) ([]model.Table, error) {
	items, err := u.tables.List(ctx)
	if err != nil {
		return []model.Table{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *TableUsecase) ListByOccupancy(ctx context.Context, occupied bool) ([]model.Table, error) {
	items, err := u.tables.ListByOccupancy(ctx, occupied)
	if err != nil {
		return []model.Table{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// Summary は占有・空席の数を返す（フロアの混み具合表示用）
func (u *TableUsecase) Summary(ctx context.Context) (OccupancySummary, error) {
	items, err := u.tables.List(ctx)
	if err != nil {
		return OccupancySummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var s OccupancySummary
	for _, t := range items {
		if t.IsOccupied {
			s.Occupied++
		} else {
			s.Free++
		}
	}
	return s, nil
}
