package bootstrap

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	logmocks "github.com/sumor0v0/second-hand-trade/gen/mocks/logging"
	mocks "github.com/sumor0v0/second-hand-trade/gen/mocks/market"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	httpwrap "github.com/sumor0v0/second-hand-trade/internal/market/infrastructure/http"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/jwt"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/metrics"
)

const routerSecret = "router-secret"

type pingerFunc func() error

func (p pingerFunc) Ping(_ context.Context) error {
	return p()
}

type routerDeps struct {
	service *mocks.MockOrderService
	ensurer *mocks.MockAccountEnsurer
	logger  *logmocks.MockLogger
}

func newTestRouter(t *testing.T, pingErr error) (*gin.Engine, *routerDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	d := &routerDeps{
		service: mocks.NewMockOrderService(ctrl),
		ensurer: mocks.NewMockAccountEnsurer(ctrl),
		logger:  logmocks.NewMockLogger(ctrl),
	}

	registry := prometheus.NewRegistry()
	router := newRouter(
		httpwrap.NewOrderHandler(d.service, d.logger),
		httpwrap.NewAuthMiddleware(routerSecret, jwt.NewJWTTokenParser(), d.logger),
		httpwrap.NewAccountMiddleware(d.ensurer, decimal.NewFromInt(100), d.logger),
		metrics.NewServerMetrics("orders", registry),
		registry,
		pingerFunc(func() error { return pingErr }),
	)

	return router, d
}

func bearer(t *testing.T, userId int64) string {
	t.Helper()

	token, err := jwt.NewJWTTokenIssuer().IssueToken([]byte(routerSecret), userId, "user", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_Routes(t *testing.T) {
	type testCase struct {
		name   string
		method string
		path   string
		body   string

		prepareFn func(d *routerDeps)

		expectedStatus int
	}

	details := domain.OrderDetails{Order: domain.Order{Id: 100, BuyerId: 1, Status: domain.OrderStatusPending}, SellerId: 2}

	tests := []testCase{
		{
			name:   "static my route wins over order id",
			method: http.MethodGet,
			path:   "/api/orders/my",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().ListBuyerOrders(gomock.Any(), int64(1)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "seller orders",
			method: http.MethodGet,
			path:   "/api/orders/seller",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().ListSellerOrders(gomock.Any(), int64(1)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "order by id",
			method: http.MethodGet,
			path:   "/api/orders/100",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().GetOrder(gomock.Any(), int64(100), int64(1)).Return(details, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "create order",
			method: http.MethodPost,
			path:   "/api/orders",
			body:   `{"itemId": 10}`,
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().CreateOrder(gomock.Any(), int64(1), int64(10)).Return(details.Order, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "pay",
			method: http.MethodPut,
			path:   "/api/orders/100/pay",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().Pay(gomock.Any(), int64(100), int64(1)).
					Return(domain.PaymentResult{OrderId: 100, OrderStatus: domain.OrderStatusPaid}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "ship",
			method: http.MethodPut,
			path:   "/api/orders/100/ship",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().Ship(gomock.Any(), int64(100), int64(1)).
					Return(domain.OrderStatusResult{}, &domain.ForbiddenError{Msg: "only the seller can ship the order"})
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "complete",
			method: http.MethodPut,
			path:   "/api/orders/100/complete",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().Complete(gomock.Any(), int64(100), int64(1)).
					Return(domain.OrderStatusResult{OrderId: 100, Status: domain.OrderStatusCompleted}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "cancel",
			method: http.MethodPut,
			path:   "/api/orders/100/cancel",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().Cancel(gomock.Any(), int64(100), int64(1)).
					Return(domain.OrderStatusResult{OrderId: 100, Status: domain.OrderStatusCancelled}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "balance",
			method: http.MethodGet,
			path:   "/api/account/balance",
			prepareFn: func(d *routerDeps) {
				d.service.EXPECT().GetBalance(gomock.Any(), int64(1)).Return(decimal.NewFromInt(100), nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, d := newTestRouter(t, nil)
			d.ensurer.EXPECT().EnsureAccountCreated(gomock.Any(), int64(1), gomock.Any()).Return(nil)
			tt.prepareFn(d)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", bearer(t, 1))
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
		})
	}
}

func TestRouter_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/api/orders/100/pay", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	router, _ = newTestRouter(t, assert.AnError)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), `market_orders_http_requests_total{handler="/health",status="200"} 1`))
}
