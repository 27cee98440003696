package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	logmocks "github.com/sumor0v0/second-hand-trade/gen/mocks/logging"
	mocks "github.com/sumor0v0/second-hand-trade/gen/mocks/market"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerDeps struct {
	service *mocks.MockOrderService
	logger  *logmocks.MockLogger
}

type handlerTestCase struct {
	name           string
	userId         int64
	orderId        string
	body           string
	expectedStatus int

	prepareFn       func(t *testing.T, d *handlerDeps)
	checkResponseFn func(t *testing.T, recorder *httptest.ResponseRecorder)
}

func runHandlerTests(t *testing.T, tests []handlerTestCase, handlerFn func(h *OrderHandler) gin.HandlerFunc) {
	t.Helper()

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			d := &handlerDeps{
				service: mocks.NewMockOrderService(ctrl),
				logger:  logmocks.NewMockLogger(ctrl),
			}
			if tt.prepareFn != nil {
				tt.prepareFn(t, d)
			}

			writer := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(writer)
			c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")
			if tt.userId != 0 {
				c.Set(userIdContextKey, tt.userId)
			}
			if tt.orderId != "" {
				c.Params = gin.Params{{Key: OrderIdKey, Value: tt.orderId}}
			}

			handlerFn(NewOrderHandler(d.service, d.logger))(c)

			assert.Equal(t, tt.expectedStatus, writer.Code)
			if tt.checkResponseFn != nil {
				tt.checkResponseFn(t, writer)
			}
		})
	}
}

func errorBody(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body["errors"]
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []handlerTestCase{
		{
			name:           "order created",
			userId:         1,
			body:           `{"itemId": 10}`,
			expectedStatus: http.StatusCreated,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().CreateOrder(gomock.Any(), int64(1), int64(10)).
					Return(domain.Order{
						Id: 100, BuyerId: 1, ItemId: 10, Price: decimal.RequireFromString("80.50"),
						Status: domain.OrderStatusPending, CreatedAt: createdAt, UpdatedAt: createdAt,
					}, nil)
			},
			checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				var body map[string]any
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, float64(100), body["id"])
				assert.Equal(t, "pending", body["status"])
				assert.Equal(t, "80.5", body["price"])
				assert.NotContains(t, body, "item_title")
			},
		},
		{
			name:           "missing item id",
			userId:         1,
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Equal(t, "invalid request body", errorBody(t, recorder))
			},
		},
		{
			name:           "malformed json",
			userId:         1,
			body:           `{"itemId":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "self purchase",
			userId:         2,
			body:           `{"itemId": 10}`,
			expectedStatus: http.StatusBadRequest,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().CreateOrder(gomock.Any(), int64(2), int64(10)).
					Return(domain.Order{}, &domain.SelfPurchaseForbiddenError{Msg: "cannot buy your own item"})
			},
			checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Equal(t, "cannot buy your own item", errorBody(t, recorder))
			},
		},
		{
			name:           "item not found",
			userId:         1,
			body:           `{"itemId": 404}`,
			expectedStatus: http.StatusNotFound,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().CreateOrder(gomock.Any(), int64(1), int64(404)).
					Return(domain.Order{}, domain.NewNotFoundError(domain.EntityItem, 404))
			},
		},
		{
			name:           "no authenticated user",
			body:           `{"itemId": 10}`,
			expectedStatus: http.StatusInternalServerError,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.logger.EXPECT().Error(gomock.Any(), gomock.Any())
			},
		},
	}

	runHandlerTests(t, tests, func(h *OrderHandler) gin.HandlerFunc { return h.CreateOrder })
}

func TestOrderHandler_Pay(t *testing.T) {
	t.Parallel()

	tests := []handlerTestCase{
		{
			name:           "paid",
			userId:         1,
			orderId:        "100",
			expectedStatus: http.StatusOK,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().Pay(gomock.Any(), int64(100), int64(1)).
					Return(domain.PaymentResult{
						OrderId:       100,
						OrderStatus:   domain.OrderStatusPaid,
						Price:         decimal.NewFromInt(80),
						ItemId:        10,
						ItemStatus:    domain.ItemStatusSold,
						BuyerBalance:  decimal.NewFromInt(20),
						SellerBalance: decimal.NewFromInt(80),
					}, nil)
			},
			checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				var body map[string]any
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, "paid", body["status"])
				assert.Equal(t, "sold", body["item_status"])
				assert.Equal(t, "20", body["buyer_balance"])
				assert.Equal(t, "80", body["seller_balance"])
			},
		},
		{
			name:           "invalid order id",
			userId:         1,
			orderId:        "abc",
			expectedStatus: http.StatusBadRequest,
			checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Equal(t, "invalid order id", errorBody(t, recorder))
			},
		},
		{
			name:           "negative order id",
			userId:         1,
			orderId:        "-5",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not the buyer",
			userId:         7,
			orderId:        "100",
			expectedStatus: http.StatusForbidden,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().Pay(gomock.Any(), int64(100), int64(7)).
					Return(domain.PaymentResult{}, &domain.ForbiddenError{Msg: "only the buyer can pay for the order"})
			},
		},
		{
			name:           "already paid",
			userId:         1,
			orderId:        "100",
			expectedStatus: http.StatusBadRequest,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().Pay(gomock.Any(), int64(100), int64(1)).
					Return(domain.PaymentResult{}, &domain.InvalidStateError{Reason: domain.ReasonOrderNotPayable, Msg: "cannot pay order in status paid"})
			},
		},
		{
			name:           "insufficient funds",
			userId:         1,
			orderId:        "100",
			expectedStatus: http.StatusBadRequest,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().Pay(gomock.Any(), int64(100), int64(1)).
					Return(domain.PaymentResult{}, &domain.InsufficientFundsError{Msg: "balance 50 is less than price 100"})
			},
		},
		{
			name:           "rows busy",
			userId:         1,
			orderId:        "100",
			expectedStatus: http.StatusServiceUnavailable,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().Pay(gomock.Any(), int64(100), int64(1)).
					Return(domain.PaymentResult{}, &domain.BusyError{Msg: "resource is busy, try again later"})
			},
			checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Equal(t, "1", recorder.Header().Get("Retry-After"))
			},
		},
		{
			name:           "unexpected error is hidden",
			userId:         1,
			orderId:        "100",
			expectedStatus: http.StatusInternalServerError,
			prepareFn: func(t *testing.T, d *handlerDeps) {
				d.service.EXPECT().Pay(gomock.Any(), int64(100), int64(1)).
					Return(domain.PaymentResult{}, assert.AnError)
				d.logger.EXPECT().Error("request failed", gomock.Any())
			},
			checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				assert.Equal(t, "internal server error", errorBody(t, recorder))
			},
		},
	}

	runHandlerTests(t, tests, func(h *OrderHandler) gin.HandlerFunc { return h.Pay })
}

func TestOrderHandler_StatusChanges(t *testing.T) {
	t.Parallel()

	statusBody := func(expected domain.OrderStatus) func(t *testing.T, recorder *httptest.ResponseRecorder) {
		return func(t *testing.T, recorder *httptest.ResponseRecorder) {
			var body statusResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, statusResponse{Id: 100, Status: expected}, body)
		}
	}

	t.Run("ship", func(t *testing.T) {
		t.Parallel()
		runHandlerTests(t, []handlerTestCase{
			{
				name:           "shipped",
				userId:         2,
				orderId:        "100",
				expectedStatus: http.StatusOK,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().Ship(gomock.Any(), int64(100), int64(2)).
						Return(domain.OrderStatusResult{OrderId: 100, Status: domain.OrderStatusShipped}, nil)
				},
				checkResponseFn: statusBody(domain.OrderStatusShipped),
			},
			{
				name:           "not paid yet",
				userId:         2,
				orderId:        "100",
				expectedStatus: http.StatusBadRequest,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().Ship(gomock.Any(), int64(100), int64(2)).
						Return(domain.OrderStatusResult{}, &domain.InvalidStateError{Reason: domain.ReasonOrderNotShippable})
				},
			},
		}, func(h *OrderHandler) gin.HandlerFunc { return h.Ship })
	})

	t.Run("complete", func(t *testing.T) {
		t.Parallel()
		runHandlerTests(t, []handlerTestCase{
			{
				name:           "completed",
				userId:         1,
				orderId:        "100",
				expectedStatus: http.StatusOK,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().Complete(gomock.Any(), int64(100), int64(1)).
						Return(domain.OrderStatusResult{OrderId: 100, Status: domain.OrderStatusCompleted}, nil)
				},
				checkResponseFn: statusBody(domain.OrderStatusCompleted),
			},
		}, func(h *OrderHandler) gin.HandlerFunc { return h.Complete })
	})

	t.Run("cancel", func(t *testing.T) {
		t.Parallel()
		runHandlerTests(t, []handlerTestCase{
			{
				name:           "cancelled",
				userId:         1,
				orderId:        "100",
				expectedStatus: http.StatusOK,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().Cancel(gomock.Any(), int64(100), int64(1)).
						Return(domain.OrderStatusResult{OrderId: 100, Status: domain.OrderStatusCancelled}, nil)
				},
				checkResponseFn: statusBody(domain.OrderStatusCancelled),
			},
			{
				name:           "order missing",
				userId:         1,
				orderId:        "404",
				expectedStatus: http.StatusNotFound,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().Cancel(gomock.Any(), int64(404), int64(1)).
						Return(domain.OrderStatusResult{}, domain.NewNotFoundError(domain.EntityOrder, 404))
				},
			},
		}, func(h *OrderHandler) gin.HandlerFunc { return h.Cancel })
	})
}

func TestOrderHandler_Reads(t *testing.T) {
	t.Parallel()

	details := domain.OrderDetails{
		Order:      domain.Order{Id: 100, BuyerId: 1, ItemId: 10, Price: decimal.NewFromInt(80), Status: domain.OrderStatusPaid},
		ItemTitle:  "bike",
		ItemStatus: domain.ItemStatusSold,
		SellerId:   2,
	}

	t.Run("get order", func(t *testing.T) {
		t.Parallel()
		runHandlerTests(t, []handlerTestCase{
			{
				name:           "seller reads order",
				userId:         2,
				orderId:        "100",
				expectedStatus: http.StatusOK,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().GetOrder(gomock.Any(), int64(100), int64(2)).Return(details, nil)
				},
				checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
					var body map[string]any
					require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
					assert.Equal(t, "bike", body["item_title"])
					assert.Equal(t, float64(2), body["seller_id"])
				},
			},
			{
				name:           "stranger",
				userId:         3,
				orderId:        "100",
				expectedStatus: http.StatusForbidden,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().GetOrder(gomock.Any(), int64(100), int64(3)).
						Return(domain.OrderDetails{}, &domain.ForbiddenError{Msg: "order belongs to other users"})
				},
			},
		}, func(h *OrderHandler) gin.HandlerFunc { return h.GetOrder })
	})

	t.Run("list my orders", func(t *testing.T) {
		t.Parallel()
		runHandlerTests(t, []handlerTestCase{
			{
				name:           "buyer orders",
				userId:         1,
				expectedStatus: http.StatusOK,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().ListBuyerOrders(gomock.Any(), int64(1)).Return([]domain.OrderDetails{details}, nil)
				},
				checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
					var body []map[string]any
					require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
					require.Len(t, body, 1)
					assert.Equal(t, float64(100), body[0]["id"])
				},
			},
			{
				name:           "empty list is an array",
				userId:         5,
				expectedStatus: http.StatusOK,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().ListBuyerOrders(gomock.Any(), int64(5)).Return(nil, nil)
				},
				checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
					assert.JSONEq(t, `[]`, recorder.Body.String())
				},
			},
		}, func(h *OrderHandler) gin.HandlerFunc { return h.ListMyOrders })
	})

	t.Run("list seller orders", func(t *testing.T) {
		t.Parallel()
		runHandlerTests(t, []handlerTestCase{
			{
				name:           "storage failure",
				userId:         2,
				expectedStatus: http.StatusInternalServerError,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().ListSellerOrders(gomock.Any(), int64(2)).Return(nil, assert.AnError)
					d.logger.EXPECT().Error("request failed", gomock.Any())
				},
			},
		}, func(h *OrderHandler) gin.HandlerFunc { return h.ListSellerOrders })
	})

	t.Run("balance", func(t *testing.T) {
		t.Parallel()
		runHandlerTests(t, []handlerTestCase{
			{
				name:           "balance",
				userId:         1,
				expectedStatus: http.StatusOK,
				prepareFn: func(t *testing.T, d *handlerDeps) {
					d.service.EXPECT().GetBalance(gomock.Any(), int64(1)).Return(decimal.RequireFromString("99.99"), nil)
				},
				checkResponseFn: func(t *testing.T, recorder *httptest.ResponseRecorder) {
					assert.JSONEq(t, `{"user_id": 1, "balance": "99.99"}`, recorder.Body.String())
				},
			},
		}, func(h *OrderHandler) gin.HandlerFunc { return h.GetBalance })
	})
}
