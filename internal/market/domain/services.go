package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=../../../gen/mocks/market/mock_services.go -package=mocks . OrderService

type PaymentResult struct {
	OrderId       int64
	OrderStatus   OrderStatus
	Price         decimal.Decimal
	ItemId        int64
	ItemStatus    ItemStatus
	BuyerBalance  decimal.Decimal
	SellerBalance decimal.Decimal
}

type OrderStatusResult struct {
	OrderId int64
	Status  OrderStatus
}

type OrderService interface {
	CreateOrder(ctx context.Context, buyerId, itemId int64) (Order, error)
	Pay(ctx context.Context, orderId, buyerId int64) (PaymentResult, error)
	Ship(ctx context.Context, orderId, sellerId int64) (OrderStatusResult, error)
	Complete(ctx context.Context, orderId, buyerId int64) (OrderStatusResult, error)
	Cancel(ctx context.Context, orderId, buyerId int64) (OrderStatusResult, error)

	GetOrder(ctx context.Context, orderId, actorId int64) (OrderDetails, error)
	ListBuyerOrders(ctx context.Context, buyerId int64) ([]OrderDetails, error)
	ListSellerOrders(ctx context.Context, sellerId int64) ([]OrderDetails, error)
	GetBalance(ctx context.Context, userId int64) (decimal.Decimal, error)
}
