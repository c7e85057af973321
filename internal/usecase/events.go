package usecase

import "foh/internal/domain/model"

// 書き込み成功後に各ダッシュボードへスナップショットを配る約束。
// 配信はat-least-onceの全量スナップショットなので、受け手は同じ通知を
// 何度受けても安全（冪等）でなければならない。
type EventPublisher interface {
	PublishOrder(order OrderOutput)
	PublishTable(table model.Table)
}

// テスト用・配信なし
type NopPublisher struct{}

func (NopPublisher) PublishOrder(OrderOutput) {}
func (NopPublisher) PublishTable(model.Table) {}
