package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

// OrderCase runs every order lifecycle operation as one unit of work over the item registry,
// the order store and the account ledger.
type OrderCase struct {
	txManager database.TxManager
	items     domain.ItemRegistry
	orders    domain.OrderStore
	accounts  domain.AccountLedger
	publisher domain.OrderEventPublisher
	logger    logging.Logger
}

func NewOrderCase(
	txManager database.TxManager,
	items domain.ItemRegistry,
	orders domain.OrderStore,
	accounts domain.AccountLedger,
	publisher domain.OrderEventPublisher,
	logger logging.Logger,
) *OrderCase {
	return &OrderCase{
		txManager: txManager,
		items:     items,
		orders:    orders,
		accounts:  accounts,
		publisher: publisher,
		logger:    logger,
	}
}

func (oc *OrderCase) CreateOrder(ctx context.Context, buyerId, itemId int64) (domain.Order, error) {
	if buyerId <= 0 || itemId <= 0 {
		return domain.Order{}, &domain.InvalidArgumentsError{Msg: "buyer id and item id must be positive"}
	}

	var order domain.Order
	var sellerId int64

	err := oc.withinTransaction(ctx, domain.EventOrderCreated, func(ctx context.Context, executor database.QueryExecuter) error {
		item, err := oc.items.GetForUpdate(ctx, executor, itemId)
		if err != nil {
			return err
		}

		if item.Status != domain.ItemStatusOnSale {
			return &domain.InvalidStateError{
				Reason: domain.ReasonItemNotAvailable,
				Msg:    fmt.Sprintf("item %d is %s", itemId, item.Status),
			}
		}
		if item.SellerId == buyerId {
			return &domain.SelfPurchaseForbiddenError{Msg: "cannot buy your own item"}
		}
		if !item.Price.IsPositive() {
			return &domain.InvalidPriceError{Msg: fmt.Sprintf("item %d has non-positive price %s", itemId, item.Price)}
		}

		order, err = oc.orders.Create(ctx, executor, buyerId, itemId, item.Price)
		if err != nil {
			return err
		}
		sellerId = item.SellerId

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	oc.publish(ctx, domain.EventOrderCreated, order, sellerId)

	return order, nil
}

// Pay moves the order price from the buyer to the seller. Rows are locked in a fixed order:
// order, item, then both accounts by ascending user id.
func (oc *OrderCase) Pay(ctx context.Context, orderId, buyerId int64) (domain.PaymentResult, error) {
	var result domain.PaymentResult
	var paid domain.Order
	var sellerId int64

	err := oc.withinTransaction(ctx, domain.EventOrderPaid, func(ctx context.Context, executor database.QueryExecuter) error {
		order, err := oc.orders.GetForUpdate(ctx, executor, orderId)
		if err != nil {
			return err
		}

		if order.BuyerId != buyerId {
			return &domain.ForbiddenError{Msg: "only the buyer can pay for the order"}
		}

		next, err := domain.NextOrderStatus(order.Status, domain.OrderOperationPay)
		if err != nil {
			return err
		}

		item, err := oc.items.GetForUpdate(ctx, executor, order.ItemId)
		if err != nil {
			return err
		}

		// A sibling order paid first owns the item.
		if item.Status != domain.ItemStatusOnSale {
			return &domain.InvalidStateError{
				Reason: domain.ReasonItemNotAvailable,
				Msg:    fmt.Sprintf("item %d is %s", item.Id, item.Status),
			}
		}

		if !order.Price.IsPositive() {
			return &domain.InvalidPriceError{Msg: fmt.Sprintf("order %d has non-positive price %s", orderId, order.Price)}
		}

		balances, err := oc.accounts.LockAccounts(ctx, executor, order.BuyerId, item.SellerId)
		if err != nil {
			return err
		}

		if balances[order.BuyerId].LessThan(order.Price) {
			return &domain.InsufficientFundsError{
				Msg: fmt.Sprintf("balance %s is less than price %s", balances[order.BuyerId], order.Price),
			}
		}

		buyerBalance, err := oc.accounts.Adjust(ctx, executor, order.BuyerId, order.Price.Neg())
		if err != nil {
			return err
		}

		sellerBalance, err := oc.accounts.Adjust(ctx, executor, item.SellerId, order.Price)
		if err != nil {
			return err
		}

		err = oc.accounts.RecordTransfer(ctx, executor, domain.BalanceTransfer{
			OrderId:    order.Id,
			FromUserId: order.BuyerId,
			ToUserId:   item.SellerId,
			Amount:     order.Price,
		})
		if err != nil {
			return err
		}

		err = oc.orders.TransitionStatus(ctx, executor, order.Id, order.Status, next)
		if err != nil {
			return err
		}

		err = oc.items.TransitionStatus(ctx, executor, item.Id, domain.ItemStatusOnSale, domain.ItemStatusSold)
		if err != nil {
			return err
		}

		paid = order
		paid.Status = next
		sellerId = item.SellerId

		result = domain.PaymentResult{
			OrderId:       order.Id,
			OrderStatus:   next,
			Price:         order.Price,
			ItemId:        item.Id,
			ItemStatus:    domain.ItemStatusSold,
			BuyerBalance:  buyerBalance,
			SellerBalance: sellerBalance,
		}

		return nil
	})
	if err != nil {
		return domain.PaymentResult{}, err
	}

	oc.publish(ctx, domain.EventOrderPaid, paid, sellerId)

	return result, nil
}

func (oc *OrderCase) Ship(ctx context.Context, orderId, sellerId int64) (domain.OrderStatusResult, error) {
	return oc.advance(ctx, orderId, domain.OrderOperationShip, domain.EventOrderShipped,
		func(order domain.Order, item domain.Item) error {
			if item.SellerId != sellerId {
				return &domain.ForbiddenError{Msg: "only the seller can ship the order"}
			}
			return nil
		})
}

func (oc *OrderCase) Complete(ctx context.Context, orderId, buyerId int64) (domain.OrderStatusResult, error) {
	return oc.advance(ctx, orderId, domain.OrderOperationComplete, domain.EventOrderCompleted,
		func(order domain.Order, _ domain.Item) error {
			if order.BuyerId != buyerId {
				return &domain.ForbiddenError{Msg: "only the buyer can complete the order"}
			}
			return nil
		})
}

func (oc *OrderCase) Cancel(ctx context.Context, orderId, buyerId int64) (domain.OrderStatusResult, error) {
	return oc.advance(ctx, orderId, domain.OrderOperationCancel, domain.EventOrderCancelled,
		func(order domain.Order, _ domain.Item) error {
			if order.BuyerId != buyerId {
				return &domain.ForbiddenError{Msg: "only the buyer can cancel the order"}
			}
			return nil
		})
}

// advance applies a balance-free transition: lock the order, authorize the actor, look up the
// next status and write it.
func (oc *OrderCase) advance(
	ctx context.Context,
	orderId int64,
	operation domain.OrderOperation,
	eventType domain.OrderEventType,
	authorize func(order domain.Order, item domain.Item) error,
) (domain.OrderStatusResult, error) {
	var updated domain.Order
	var sellerId int64

	err := oc.withinTransaction(ctx, eventType, func(ctx context.Context, executor database.QueryExecuter) error {
		order, err := oc.orders.GetForUpdate(ctx, executor, orderId)
		if err != nil {
			return err
		}

		item, err := oc.items.Get(ctx, executor, order.ItemId)
		if err != nil {
			return err
		}

		if err = authorize(order, item); err != nil {
			return err
		}

		next, err := domain.NextOrderStatus(order.Status, operation)
		if err != nil {
			return err
		}

		err = oc.orders.TransitionStatus(ctx, executor, order.Id, order.Status, next)
		if err != nil {
			return err
		}

		updated = order
		updated.Status = next
		sellerId = item.SellerId

		return nil
	})
	if err != nil {
		return domain.OrderStatusResult{}, err
	}

	oc.publish(ctx, eventType, updated, sellerId)

	return domain.OrderStatusResult{OrderId: updated.Id, Status: updated.Status}, nil
}

func (oc *OrderCase) GetOrder(ctx context.Context, orderId, actorId int64) (domain.OrderDetails, error) {
	details, err := oc.orders.GetDetails(ctx, orderId)
	if err != nil {
		return domain.OrderDetails{}, err
	}

	if details.BuyerId != actorId && details.SellerId != actorId {
		return domain.OrderDetails{}, &domain.ForbiddenError{Msg: "order belongs to other users"}
	}

	return details, nil
}

func (oc *OrderCase) ListBuyerOrders(ctx context.Context, buyerId int64) ([]domain.OrderDetails, error) {
	return oc.orders.ListByBuyer(ctx, buyerId)
}

func (oc *OrderCase) ListSellerOrders(ctx context.Context, sellerId int64) ([]domain.OrderDetails, error) {
	return oc.orders.ListBySeller(ctx, sellerId)
}

func (oc *OrderCase) GetBalance(ctx context.Context, userId int64) (decimal.Decimal, error) {
	return oc.accounts.FetchBalance(ctx, userId)
}

func (oc *OrderCase) withinTransaction(ctx context.Context, eventType domain.OrderEventType, txFn database.TxFunc) error {
	err := oc.txManager.WithinTransaction(ctx, txFn)
	if err != nil && database.IsContention(err) {
		oc.logger.Warn("order operation gave up waiting for locks", "operation", string(eventType), "error", err)
		return &domain.BusyError{Msg: "resource is busy, try again later", Err: err}
	}

	return err
}

func (oc *OrderCase) publish(ctx context.Context, eventType domain.OrderEventType, order domain.Order, sellerId int64) {
	oc.publisher.Publish(ctx, domain.OrderEvent{
		EventId:   uuid.NewString(),
		Type:      eventType,
		OrderId:   order.Id,
		ItemId:    order.ItemId,
		BuyerId:   order.BuyerId,
		SellerId:  sellerId,
		Status:    order.Status,
		Price:     order.Price,
		CreatedAt: time.Now().UTC(),
	})
}
