package usecase

import (
	"context"
	"errors"
	"net/http"

	"foh/internal/domain/model"
	repo "foh/internal/repository"
)

// 会計（テーブル締め）
type BillingUsecase struct {
	tx     repo.TransactionManager
	events EventPublisher
}

func NewBillingUsecase(tx repo.TransactionManager, events EventPublisher) *BillingUsecase {
	return &BillingUsecase{tx: tx, events: events}
}

type PayOrderInput struct {
	OrderID int64
	// 取り消せない操作なので明示的な確認を必須にする
	Confirm bool
}

type PayOrderOutput struct {
	Order      OrderOutput `json:"order"`
	TableFreed bool        `json:"table_freed"`
}

// UnpaidOrders はテーブルの未精算注文を返す
func (u *BillingUsecase) UnpaidOrders(ctx context.Context, tableID int64) ([]OrderOutput, error) {
	if tableID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table id")
	}

	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Tables().FindByID(ctx, tableID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "table not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orders, err := r.Orders().ListUnpaidByTable(ctx, tableID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// MarkOrderPaid は注文をPaidにし、同じトランザクション内で残りの未精算を数えて
// ゼロならテーブルを解放する。「支払い→再確認→解放」が途中で割り込まれることはない。
func (u *BillingUsecase) MarkOrderPaid(ctx context.Context, in PayOrderInput) (PayOrderOutput, error) {
	if in.OrderID <= 0 {
		return PayOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !in.Confirm {
		return PayOrderOutput{}, NewHTTPError(http.StatusBadRequest, "confirmation required")
	}

	var out PayOrderOutput
	var freedTable model.Table

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !order.Status.CanAdvanceTo(model.OrderStatusPaid) {
			return NewHTTPError(http.StatusConflict, "order already paid")
		}

		if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusPaid); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		order.Status = model.OrderStatusPaid

		items, err := r.OrderItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.Order = toOrderOutput(order, items)

		//全部払い終わったらテーブルを空ける
		remaining, err := r.Orders().CountUnpaidByTable(ctx, order.TableID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if remaining == 0 {
			if err := r.Tables().SetOccupied(ctx, order.TableID, false); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			table, err := r.Tables().FindByID(ctx, order.TableID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			freedTable = table
			out.TableFreed = true
		}
		return nil
	})
	if err != nil {
		return PayOrderOutput{}, err
	}

	u.events.PublishOrder(out.Order)
	if out.TableFreed {
		u.events.PublishTable(freedTable)
	}
	return out, nil
}
