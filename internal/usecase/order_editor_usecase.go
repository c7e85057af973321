package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foh/internal/domain/model"
	repo "foh/internal/repository"
)

// ウェイターの注文作成・編集
type OrderEditorUsecase struct {
	tx     repo.TransactionManager
	events EventPublisher
}

func NewOrderEditorUsecase(tx repo.TransactionManager, events EventPublisher) *OrderEditorUsecase {
	return &OrderEditorUsecase{tx: tx, events: events}
}

type SubmitItemInput struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes"`
}

type SubmitOrderInput struct {
	TableID int64             `json:"table_id"`
	OrderID int64             `json:"order_id"` // 0なら新規作成
	Version int               `json:"version"`  // 編集時の楽観ロック版数
	Items   []SubmitItemInput `json:"items"`
}

type OrderItemOutput struct {
	Position  int    `json:"position"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price_cents"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes"`
	Prepared  bool   `json:"prepared"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	TableID    int64             `json:"table_id"`
	Status     string            `json:"status"`
	Total      string            `json:"total"` // "€8.00" 形式
	TotalCents int64             `json:"total_cents"`
	Version    int               `json:"version"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []OrderItemOutput `json:"items"`
}

// SubmitOrder は下書きを確定する。
// 新規なら注文作成とテーブル占有を同一トランザクションで行い、
// 編集なら明細を入れ替えて合計を再計算する（ステータスは保持）。
func (u *OrderEditorUsecase) SubmitOrder(ctx context.Context, in SubmitOrderInput) (OrderOutput, error) {
	//下書きの状態機械で入力を検証する
	draft := NewDraft()
	if err := draft.SelectTable(in.TableID); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.OrderID > 0 {
		draft.LoadOrder(in.OrderID, in.Version, nil)
	}
	for _, it := range in.Items {
		if err := draft.AddOrUpdateItem(it.ProductID, it.Quantity, it.Notes); err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if err := draft.CanSubmit(); err != nil {
		//明細0件の提出はストアに一切触れない
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var out OrderOutput
	var freshTable model.Table
	var tableOccupiedNow bool

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		table, err := r.Tables().FindByID(ctx, draft.TableID())
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "table not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//商品のスナップショットを採る（名前・単価は注文時点で固定）
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, di := range draft.Items() {
			p, err := r.Products().FindByID(ctx, di.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "product unavailable")
			}

			items = append(items, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceCents:      p.PriceCents,
				Quantity:            di.Quantity,
				Notes:               di.Notes,
				Prepared:            false,
			})
		}

		//合計は保存のたびに再計算して永続化する
		total := model.TotalOf(items)

		if draft.OrderID() > 0 {
			//編集モード：明細入れ替え
			order, err := r.Orders().FindByID(ctx, draft.OrderID())
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if order.TableID != draft.TableID() {
				return NewHTTPError(http.StatusBadRequest, "order does not belong to table")
			}
			if order.IsSettled() {
				//支払い済みは編集不可（前進のみ）
				return NewHTTPError(http.StatusConflict, "order already paid")
			}

			//版数が合わない＝他セッションが先に保存した
			err = r.Orders().UpdateTotalIfVersion(ctx, order.ID, total, draft.Version())
			if errors.Is(err, repo.ErrVersionConflict) {
				return NewHTTPError(http.StatusConflict, "version conflict")
			}
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//厨房が立てた準備フラグは、同じ行を同じ内容で出し直す限り引き継ぐ
			existing, err := r.OrderItems().ListByOrderID(ctx, order.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for i := range items {
				if i >= len(existing) {
					break
				}
				if existing[i].ProductID == items[i].ProductID && existing[i].Quantity == items[i].Quantity {
					items[i].Prepared = existing[i].Prepared
				}
			}

			if err := r.OrderItems().DeleteByOrderID(ctx, order.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			saved, err := r.Orders().FindByID(ctx, order.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			savedItems, err := r.OrderItems().ListByOrderID(ctx, order.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(saved, savedItems)
			return nil
		}

		//新規作成モード：注文＋占有フラグを同一トランザクションで
		orderID, err := r.Orders().Create(ctx, model.Order{
			TableID:    draft.TableID(),
			Status:     model.OrderStatusPending,
			TotalCents: total,
			Version:    0,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Tables().SetOccupied(ctx, table.ID, true); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		saved, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		savedItems, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(saved, savedItems)
		table.IsOccupied = true
		freshTable = table
		tableOccupiedNow = true
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//確定後にダッシュボードへ通知
	u.events.PublishOrder(out)
	if tableOccupiedNow {
		u.events.PublishTable(freshTable)
	}
	return out, nil
}

// LoadActiveOrder はテーブルのアクティブな注文（最新の未精算）を返す。
// 未精算が複数あっても latest-created wins で1件に決める。
func (u *OrderEditorUsecase) LoadActiveOrder(ctx context.Context, tableID int64) (OrderOutput, error) {
	if tableID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, found, err := r.Orders().FindActiveByTable(ctx, tableID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !found {
			return NewHTTPError(http.StatusNotFound, "no active order")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListTableOrders はテーブルの未精算注文を全部返す（編集対象を選ぶ画面用）
func (u *OrderEditorUsecase) ListTableOrders(ctx context.Context, tableID int64) ([]OrderOutput, error) {
	if tableID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table id")
	}

	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
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

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			Position:  it.Position,
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPriceCents,
			Quantity:  it.Quantity,
			Notes:     it.Notes,
			Prepared:  it.Prepared,
		})
	}

	return OrderOutput{
		ID:         o.ID,
		TableID:    o.TableID,
		Status:     string(o.Status),
		Total:      model.FormatEuro(o.TotalCents),
		TotalCents: o.TotalCents,
		Version:    o.Version,
		CreatedAt:  o.CreatedAt,
		Items:      outItems,
	}
}
