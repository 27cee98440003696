package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
)

const selectOrderDetailsSQL = `SELECT o.id, o.buyer_id, o.item_id, o.price::text, o.status, o.created_at, o.updated_at,
       i.title, i.status, i.seller_id
  FROM orders o
  JOIN items i ON i.id = o.item_id`

type OrdersRepository struct {
	querier database.Querier
}

func NewOrdersRepository(querier database.Querier) *OrdersRepository {
	return &OrdersRepository{
		querier: querier,
	}
}

func (r *OrdersRepository) Create(ctx context.Context, querier database.Querier, buyerId, itemId int64, price decimal.Decimal) (domain.Order, error) {
	insertOrderSQL := `INSERT INTO orders (buyer_id, item_id, price, status) VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	order := domain.Order{
		BuyerId: buyerId,
		ItemId:  itemId,
		Price:   price,
		Status:  domain.OrderStatusPending,
	}

	err := querier.QueryRow(ctx, insertOrderSQL, buyerId, itemId, price.String(), string(domain.OrderStatusPending)).
		Scan(&order.Id, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) GetForUpdate(ctx context.Context, querier database.Querier, orderId int64) (domain.Order, error) {
	lockOrderSQL := `SELECT id, buyer_id, item_id, price::text, status, created_at, updated_at
FROM orders WHERE id = $1 FOR UPDATE`

	var order domain.Order
	var price, status string

	err := querier.QueryRow(ctx, lockOrderSQL, orderId).
		Scan(&order.Id, &order.BuyerId, &order.ItemId, &price, &status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.NewNotFoundError(domain.EntityOrder, orderId)
		}

		return domain.Order{}, fmt.Errorf("failed to lock order row: %w", err)
	}

	order.Price, err = parseAmount(price)
	if err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatus(status)

	return order, nil
}

func (r *OrdersRepository) TransitionStatus(ctx context.Context, executor database.Executor, orderId int64, expected, next domain.OrderStatus) error {
	updateSQL := `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`
	tag, err := executor.Exec(ctx, updateSQL, string(next), orderId, string(expected))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	} else if tag.RowsAffected() == 0 {
		return &domain.InvalidStateError{
			Reason: domain.ReasonOrderStatusConflict,
			Msg:    fmt.Sprintf("order %d is no longer %s", orderId, expected),
		}
	}

	return nil
}

func (r *OrdersRepository) GetDetails(ctx context.Context, orderId int64) (domain.OrderDetails, error) {
	rows, err := r.querier.Query(ctx, selectOrderDetailsSQL+` WHERE o.id = $1`, orderId)
	if err != nil {
		return domain.OrderDetails{}, fmt.Errorf("failed to select order: %w", err)
	}

	orders, err := collectOrderDetails(rows)
	if err != nil {
		return domain.OrderDetails{}, err
	}

	if len(orders) == 0 {
		return domain.OrderDetails{}, domain.NewNotFoundError(domain.EntityOrder, orderId)
	}

	return orders[0], nil
}

func (r *OrdersRepository) ListByBuyer(ctx context.Context, buyerId int64) ([]domain.OrderDetails, error) {
	rows, err := r.querier.Query(ctx, selectOrderDetailsSQL+` WHERE o.buyer_id = $1 ORDER BY o.created_at DESC, o.id DESC`, buyerId)
	if err != nil {
		return nil, fmt.Errorf("failed to select buyer orders: %w", err)
	}

	return collectOrderDetails(rows)
}

func (r *OrdersRepository) ListBySeller(ctx context.Context, sellerId int64) ([]domain.OrderDetails, error) {
	rows, err := r.querier.Query(ctx, selectOrderDetailsSQL+` WHERE i.seller_id = $1 ORDER BY o.created_at DESC, o.id DESC`, sellerId)
	if err != nil {
		return nil, fmt.Errorf("failed to select seller orders: %w", err)
	}

	return collectOrderDetails(rows)
}

func collectOrderDetails(rows pgx.Rows) ([]domain.OrderDetails, error) {
	defer rows.Close()

	result := make([]domain.OrderDetails, 0)

	for rows.Next() {
		var details domain.OrderDetails
		var price, status, itemStatus string

		err := rows.Scan(
			&details.Id, &details.BuyerId, &details.ItemId, &price, &status, &details.CreatedAt, &details.UpdatedAt,
			&details.ItemTitle, &itemStatus, &details.SellerId,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		details.Price, err = parseAmount(price)
		if err != nil {
			return nil, err
		}
		details.Status = domain.OrderStatus(status)
		details.ItemStatus = domain.ItemStatus(itemStatus)

		result = append(result, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	return result, nil
}
