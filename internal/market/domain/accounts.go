package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
)

//go:generate mockgen -destination=../../../gen/mocks/market/mock_accounts.go -package=mocks . AccountLedger,AccountEnsurer

type BalanceTransfer struct {
	OrderId    int64
	FromUserId int64
	ToUserId   int64
	Amount     decimal.Decimal
}

type AccountLedger interface {
	GetBalanceForUpdate(ctx context.Context, querier database.Querier, userId int64) (decimal.Decimal, error)
	// LockAccounts locks every account row in ascending user id order and returns the balances it read.
	LockAccounts(ctx context.Context, querier database.Querier, userIds ...int64) (map[int64]decimal.Decimal, error)
	Adjust(ctx context.Context, querier database.Querier, userId int64, delta decimal.Decimal) (decimal.Decimal, error)
	RecordTransfer(ctx context.Context, executor database.Executor, transfer BalanceTransfer) error

	FetchBalance(ctx context.Context, userId int64) (decimal.Decimal, error)
}

type AccountEnsurer interface {
	EnsureAccountCreated(ctx context.Context, userId int64, startBalance decimal.Decimal) error
}
