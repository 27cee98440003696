package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=../../../gen/mocks/market/mock_events.go -package=mocks . OrderEventPublisher

type OrderEventType string

const (
	EventOrderCreated   OrderEventType = "order.created"
	EventOrderPaid      OrderEventType = "order.paid"
	EventOrderShipped   OrderEventType = "order.shipped"
	EventOrderCompleted OrderEventType = "order.completed"
	EventOrderCancelled OrderEventType = "order.cancelled"
)

type OrderEvent struct {
	EventId   string          `json:"event_id"`
	Type      OrderEventType  `json:"type"`
	OrderId   int64           `json:"order_id"`
	ItemId    int64           `json:"item_id"`
	BuyerId   int64           `json:"buyer_id"`
	SellerId  int64           `json:"seller_id,omitempty"`
	Status    OrderStatus     `json:"status"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderEventPublisher delivers order events after the unit of work that produced them has committed.
// Publish must not block the caller and has no way to fail the operation.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent)
}
