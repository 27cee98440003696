package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
)

//go:generate mockgen -destination=../../../gen/mocks/market/mock_orders.go -package=mocks . OrderStore

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderOperation string

const (
	OrderOperationPay      OrderOperation = "pay"
	OrderOperationShip     OrderOperation = "ship"
	OrderOperationComplete OrderOperation = "complete"
	OrderOperationCancel   OrderOperation = "cancel"
)

type orderTransition struct {
	from      OrderStatus
	operation OrderOperation
}

// orderTransitions is the complete state machine of an order. A pair missing from it is illegal.
var orderTransitions = map[orderTransition]OrderStatus{
	{from: OrderStatusPending, operation: OrderOperationPay}:      OrderStatusPaid,
	{from: OrderStatusPaid, operation: OrderOperationShip}:        OrderStatusShipped,
	{from: OrderStatusShipped, operation: OrderOperationComplete}: OrderStatusCompleted,
	{from: OrderStatusPending, operation: OrderOperationCancel}:   OrderStatusCancelled,
}

var rejectionReasons = map[OrderOperation]InvalidStateReason{
	OrderOperationPay:      ReasonOrderNotPayable,
	OrderOperationShip:     ReasonOrderNotShippable,
	OrderOperationComplete: ReasonOrderNotCompletable,
	OrderOperationCancel:   ReasonOrderNotCancellable,
}

// NextOrderStatus returns the status an order in current moves to when operation is applied,
// or an InvalidStateError if the state machine has no such edge.
func NextOrderStatus(current OrderStatus, operation OrderOperation) (OrderStatus, error) {
	next, ok := orderTransitions[orderTransition{from: current, operation: operation}]
	if ok {
		return next, nil
	}

	reason, known := rejectionReasons[operation]
	if !known {
		reason = ReasonIllegalTransition
	}

	return "", &InvalidStateError{
		Reason: reason,
		Msg:    fmt.Sprintf("cannot %s order in status %s", operation, current),
	}
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Order struct {
	Id        int64
	BuyerId   int64
	ItemId    int64
	Price     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderDetails is an order joined with the item it was placed for.
type OrderDetails struct {
	Order
	ItemTitle  string
	ItemStatus ItemStatus
	SellerId   int64
}

type OrderStore interface {
	Create(ctx context.Context, querier database.Querier, buyerId, itemId int64, price decimal.Decimal) (Order, error)
	GetForUpdate(ctx context.Context, querier database.Querier, orderId int64) (Order, error)
	TransitionStatus(ctx context.Context, executor database.Executor, orderId int64, expected, next OrderStatus) error

	GetDetails(ctx context.Context, orderId int64) (OrderDetails, error)
	ListByBuyer(ctx context.Context, buyerId int64) ([]OrderDetails, error)
	ListBySeller(ctx context.Context, sellerId int64) ([]OrderDetails, error)
}
