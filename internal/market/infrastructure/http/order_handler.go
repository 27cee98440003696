package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

const (
	OrderIdKey = "id"
)

type OrderHandler struct {
	service domain.OrderService
	logger  logging.Logger
}

func NewOrderHandler(service domain.OrderService, logger logging.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userId, ok := h.actor(c)
	if !ok {
		return
	}

	var body createOrderRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), userId, body.ItemId)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(order))
}

func (h *OrderHandler) Pay(c *gin.Context) {
	userId, orderId, ok := h.actorAndOrder(c)
	if !ok {
		return
	}

	result, err := h.service.Pay(c.Request.Context(), orderId, userId)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, paymentResponse{
		Id:            result.OrderId,
		Status:        result.OrderStatus,
		Price:         result.Price,
		ItemId:        result.ItemId,
		ItemStatus:    result.ItemStatus,
		BuyerBalance:  result.BuyerBalance,
		SellerBalance: result.SellerBalance,
	})
}

func (h *OrderHandler) Ship(c *gin.Context) {
	h.changeStatus(c, h.service.Ship)
}

func (h *OrderHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.service.Complete)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.service.Cancel)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userId, orderId, ok := h.actorAndOrder(c)
	if !ok {
		return
	}

	details, err := h.service.GetOrder(c.Request.Context(), orderId, userId)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, newOrderDetailsResponse(details))
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userId, ok := h.actor(c)
	if !ok {
		return
	}

	orders, err := h.service.ListBuyerOrders(c.Request.Context(), userId)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, newOrderListResponse(orders))
}

func (h *OrderHandler) ListSellerOrders(c *gin.Context) {
	userId, ok := h.actor(c)
	if !ok {
		return
	}

	orders, err := h.service.ListSellerOrders(c.Request.Context(), userId)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, newOrderListResponse(orders))
}

func (h *OrderHandler) GetBalance(c *gin.Context) {
	userId, ok := h.actor(c)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), userId)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, balanceResponse{UserId: userId, Balance: balance})
}

type statusChangeFn func(ctx context.Context, orderId, actorId int64) (domain.OrderStatusResult, error)

func (h *OrderHandler) changeStatus(c *gin.Context, changeFn statusChangeFn) {
	userId, orderId, ok := h.actorAndOrder(c)
	if !ok {
		return
	}

	result, err := changeFn(c.Request.Context(), orderId, userId)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, statusResponse{Id: result.OrderId, Status: result.Status})
}

func (h *OrderHandler) actor(c *gin.Context) (int64, bool) {
	userId, ok := userIdFromContext(c)
	if !ok {
		h.logger.Error("user id not found in request context", "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
		return 0, false
	}

	return userId, true
}

func (h *OrderHandler) actorAndOrder(c *gin.Context) (int64, int64, bool) {
	userId, ok := h.actor(c)
	if !ok {
		return 0, 0, false
	}

	orderId, err := strconv.ParseInt(c.Param(OrderIdKey), 10, 64)
	if err != nil || orderId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid order id"})
		return 0, 0, false
	}

	return userId, orderId, true
}
