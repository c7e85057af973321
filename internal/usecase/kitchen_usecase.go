package usecase

import (
	"context"
	"errors"
	"net/http"

	"foh/internal/domain/model"
	repo "foh/internal/repository"
)

// 厨房ダッシュボード
type KitchenUsecase struct {
	tx     repo.TransactionManager
	events EventPublisher
	// trueならReadyの注文もキューに残す（受け渡し待ちを見せる運用向け）
	showReady bool
}

func NewKitchenUsecase(tx repo.TransactionManager, events EventPublisher, showReady bool) *KitchenUsecase {
	return &KitchenUsecase{tx: tx, events: events, showReady: showReady}
}

// Queue は調理待ちの注文を古い順（先入れ先出し）で返す
func (u *KitchenUsecase) Queue(ctx context.Context) ([]OrderOutput, error) {
	statuses := []model.OrderStatus{model.OrderStatusPending}
	if u.showReady {
		statuses = append(statuses, model.OrderStatusReady)
	}

	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByStatuses(ctx, statuses)
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

// MarkItemPrepared は明細1行の準備完了を立てる。
// 行単位のUPDATEなので他セッションの編集と衝突しない。トグルではなく一方通行。
func (u *KitchenUsecase) MarkItemPrepared(ctx context.Context, orderID int64, position int) (OrderOutput, error) {
	if orderID <= 0 || position < 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.IsSettled() {
			return NewHTTPError(http.StatusConflict, "order already paid")
		}

		err = r.OrderItems().SetPrepared(ctx, orderID, position, true)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "line item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.events.PublishOrder(out)
	return out, nil
}

// MarkOrderReady はPending→Ready。準備状況による制限はない。
func (u *KitchenUsecase) MarkOrderReady(ctx context.Context, orderID int64) (OrderOutput, error) {
	return u.advance(ctx, orderID, model.OrderStatusReady, false)
}

// MarkOrderComplete は→Completed。全明細がPreparedのときだけ通す。
func (u *KitchenUsecase) MarkOrderComplete(ctx context.Context, orderID int64) (OrderOutput, error) {
	return u.advance(ctx, orderID, model.OrderStatusCompleted, true)
}

func (u *KitchenUsecase) advance(ctx context.Context, orderID int64, next model.OrderStatus, requireAllPrepared bool) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//後退遷移はどこからも許さない
		if !order.Status.CanAdvanceTo(next) {
			return NewHTTPError(http.StatusConflict, "invalid status transition")
		}

		if requireAllPrepared {
			unprepared, err := r.OrderItems().CountUnprepared(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if unprepared > 0 {
				return NewHTTPError(http.StatusConflict, "items not prepared")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.Status = next
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.events.PublishOrder(out)
	return out, nil
}
