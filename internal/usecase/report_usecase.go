package usecase

import (
	"context"
	"net/http"

	"foh/internal/domain/model"
	repo "foh/internal/repository"
)

// 管理者向けの集計（読み取り専用）
type ReportUsecase struct {
	orders repo.OrderRepository
	tables repo.TableRepository
}

func NewReportUsecase(orders repo.OrderRepository, tables repo.TableRepository) *ReportUsecase {
	return &ReportUsecase{orders: orders, tables: tables}
}

type ReportOutput struct {
	TotalOrders     int    `json:"total_orders"`
	CompletedOrders int    `json:"completed_orders"`
	OpenOrders      int    `json:"open_orders"`
	PaidOrders      int    `json:"paid_orders"`
	OccupiedTables  int    `json:"occupied_tables"`
	FreeTables      int    `json:"free_tables"`
	RevenueCents    int64  `json:"revenue_cents"`
	Revenue         string `json:"revenue"` // 支払い済み注文の合計
}

func (u *ReportUsecase) Report(ctx context.Context) (ReportOutput, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return ReportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	tables, err := u.tables.List(ctx)
	if err != nil {
		return ReportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out ReportOutput
	out.TotalOrders = len(orders)
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusCompleted:
			out.CompletedOrders++
		case model.OrderStatusPaid:
			out.PaidOrders++
			out.RevenueCents += o.TotalCents
		default:
			out.OpenOrders++
		}
	}
	out.Revenue = model.FormatEuro(out.RevenueCents)

	for _, t := range tables {
		if t.IsOccupied {
			out.OccupiedTables++
		} else {
			out.FreeTables++
		}
	}
	return out, nil
}
