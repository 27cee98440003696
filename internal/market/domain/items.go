package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
)

//go:generate mockgen -destination=../../../gen/mocks/market/mock_items.go -package=mocks . ItemRegistry

type ItemStatus string

const (
	ItemStatusOnSale  ItemStatus = "on_sale"
	ItemStatusSold    ItemStatus = "sold"
	ItemStatusRemoved ItemStatus = "removed"
)

type Item struct {
	Id       int64
	SellerId int64
	Title    string
	Price    decimal.Decimal
	Status   ItemStatus
}

type ItemRegistry interface {
	Get(ctx context.Context, querier database.Querier, itemId int64) (Item, error)
	GetForUpdate(ctx context.Context, querier database.Querier, itemId int64) (Item, error)
	TransitionStatus(ctx context.Context, executor database.Executor, itemId int64, expected, next ItemStatus) error
}
