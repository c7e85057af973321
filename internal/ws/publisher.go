package ws

import (
	"foh/internal/domain/model"
	"foh/internal/usecase"
)

// usecase.EventPublisherのHub実装
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) PublishOrder(order usecase.OrderOutput) {
	p.hub.Publish(TopicOrders, Envelope{Type: "order", Data: order})
}

func (p *Publisher) PublishTable(table model.Table) {
	p.hub.Publish(TopicTables, Envelope{Type: "table", Data: table})
}
