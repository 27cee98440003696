package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
)

const codeCheckViolation = "23514"

type AccountsRepository struct {
	queryExecuter database.QueryExecuter
}

func NewAccountsRepository(queryExecuter database.QueryExecuter) *AccountsRepository {
	return &AccountsRepository{
		queryExecuter: queryExecuter,
	}
}

func (ar *AccountsRepository) EnsureAccountCreated(ctx context.Context, userId int64, startBalance decimal.Decimal) error {
	sql := `INSERT INTO accounts (user_id, balance) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`
	_, err := ar.queryExecuter.Exec(ctx, sql, userId, startBalance.String())
	if err != nil {
		return fmt.Errorf("failed to ensure account: %w", err)
	}

	return nil
}

func (ar *AccountsRepository) FetchBalance(ctx context.Context, userId int64) (decimal.Decimal, error) {
	sql := `SELECT balance::text FROM accounts WHERE user_id = $1`
	return scanBalance(ar.queryExecuter.QueryRow(ctx, sql, userId), userId)
}

func (ar *AccountsRepository) GetBalanceForUpdate(ctx context.Context, querier database.Querier, userId int64) (decimal.Decimal, error) {
	lockAccountSQL := `SELECT balance::text FROM accounts WHERE user_id = $1 FOR UPDATE`
	return scanBalance(querier.QueryRow(ctx, lockAccountSQL, userId), userId)
}

func (ar *AccountsRepository) LockAccounts(ctx context.Context, querier database.Querier, userIds ...int64) (map[int64]decimal.Decimal, error) {
	ordered := slices.Clone(userIds)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	balances := make(map[int64]decimal.Decimal, len(ordered))
	for _, userId := range ordered {
		balance, err := ar.GetBalanceForUpdate(ctx, querier, userId)
		if err != nil {
			return nil, err
		}

		balances[userId] = balance
	}

	return balances, nil
}

func (ar *AccountsRepository) Adjust(ctx context.Context, querier database.Querier, userId int64, delta decimal.Decimal) (decimal.Decimal, error) {
	adjustSQL := `UPDATE accounts SET balance = balance + $1::numeric, updated_at = now()
WHERE user_id = $2 AND balance + $1::numeric >= 0
RETURNING balance::text`

	var raw string
	err := querier.QueryRow(ctx, adjustSQL, delta.String(), userId).Scan(&raw)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == codeCheckViolation) {
			return decimal.Decimal{}, &domain.InsufficientFundsError{
				Msg: fmt.Sprintf("account %d cannot be adjusted by %s", userId, delta.String()),
			}
		}

		return decimal.Decimal{}, fmt.Errorf("failed to adjust balance: %w", err)
	}

	return parseAmount(raw)
}

func (ar *AccountsRepository) RecordTransfer(ctx context.Context, executor database.Executor, transfer domain.BalanceTransfer) error {
	insertTransferSQL := `INSERT INTO balance_transfers (order_id, from_user_id, to_user_id, amount) VALUES ($1, $2, $3, $4)`
	_, err := executor.Exec(ctx, insertTransferSQL, transfer.OrderId, transfer.FromUserId, transfer.ToUserId, transfer.Amount.String())
	if err != nil {
		return fmt.Errorf("failed to insert transfer record: %w", err)
	}

	return nil
}

func scanBalance(row pgx.Row, userId int64) (decimal.Decimal, error) {
	var raw string
	err := row.Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, domain.NewNotFoundError(domain.EntityAccount, userId)
		}

		return decimal.Decimal{}, fmt.Errorf("failed to read account balance: %w", err)
	}

	return parseAmount(raw)
}
