package http

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
)

type createOrderRequestBody struct {
	ItemId int64 `json:"itemId" binding:"required,gt=0"`
}

type orderResponse struct {
	Id         int64              `json:"id"`
	BuyerId    int64              `json:"buyer_id"`
	ItemId     int64              `json:"item_id"`
	Price      decimal.Decimal    `json:"price"`
	Status     domain.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	ItemTitle  string             `json:"item_title,omitempty"`
	ItemStatus domain.ItemStatus  `json:"item_status,omitempty"`
	SellerId   int64              `json:"seller_id,omitempty"`
}

type paymentResponse struct {
	Id            int64              `json:"id"`
	Status        domain.OrderStatus `json:"status"`
	Price         decimal.Decimal    `json:"price"`
	ItemId        int64              `json:"item_id"`
	ItemStatus    domain.ItemStatus  `json:"item_status"`
	BuyerBalance  decimal.Decimal    `json:"buyer_balance"`
	SellerBalance decimal.Decimal    `json:"seller_balance"`
}

type statusResponse struct {
	Id     int64              `json:"id"`
	Status domain.OrderStatus `json:"status"`
}

type balanceResponse struct {
	UserId  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

func newOrderResponse(order domain.Order) orderResponse {
	return orderResponse{
		Id:        order.Id,
		BuyerId:   order.BuyerId,
		ItemId:    order.ItemId,
		Price:     order.Price,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func newOrderDetailsResponse(details domain.OrderDetails) orderResponse {
	resp := newOrderResponse(details.Order)
	resp.ItemTitle = details.ItemTitle
	resp.ItemStatus = details.ItemStatus
	resp.SellerId = details.SellerId
	return resp
}

func newOrderListResponse(orders []domain.OrderDetails) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, details := range orders {
		resp = append(resp, newOrderDetailsResponse(details))
	}
	return resp
}
