package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
)

const selectItemSQL = `SELECT id, seller_id, title, price::text, status FROM items WHERE id = $1`

type ItemsRepository struct{}

func NewItemsRepository() *ItemsRepository {
	return &ItemsRepository{}
}

func (ir *ItemsRepository) Get(ctx context.Context, querier database.Querier, itemId int64) (domain.Item, error) {
	return scanItem(querier.QueryRow(ctx, selectItemSQL, itemId), itemId)
}

func (ir *ItemsRepository) GetForUpdate(ctx context.Context, querier database.Querier, itemId int64) (domain.Item, error) {
	return scanItem(querier.QueryRow(ctx, selectItemSQL+` FOR UPDATE`, itemId), itemId)
}

func (ir *ItemsRepository) TransitionStatus(ctx context.Context, executor database.Executor, itemId int64, expected, next domain.ItemStatus) error {
	updateSQL := `UPDATE items SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`
	tag, err := executor.Exec(ctx, updateSQL, string(next), itemId, string(expected))
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	} else if tag.RowsAffected() == 0 {
		return &domain.InvalidStateError{
			Reason: domain.ReasonItemStatusConflict,
			Msg:    fmt.Sprintf("item %d is no longer %s", itemId, expected),
		}
	}

	return nil
}

func scanItem(row pgx.Row, itemId int64) (domain.Item, error) {
	var item domain.Item
	var price, status string

	err := row.Scan(&item.Id, &item.SellerId, &item.Title, &price, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, domain.NewNotFoundError(domain.EntityItem, itemId)
		}

		return domain.Item{}, fmt.Errorf("failed to read item: %w", err)
	}

	item.Price, err = parseAmount(price)
	if err != nil {
		return domain.Item{}, err
	}
	item.Status = domain.ItemStatus(status)

	return item, nil
}
