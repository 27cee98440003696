package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	httpwrap "github.com/sumor0v0/second-hand-trade/internal/market/infrastructure/http"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/metrics"
)

const healthCheckTimeout = time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

func newRouter(
	orderHandler *httpwrap.OrderHandler,
	authMiddleware gin.HandlerFunc,
	accountMiddleware gin.HandlerFunc,
	serverMetrics *metrics.ServerMetrics,
	gatherer prometheus.Gatherer,
	pinger Pinger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), serverMetrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	api := router.Group("/api", authMiddleware, accountMiddleware)
	{
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/my", orderHandler.ListMyOrders)
		api.GET("/orders/seller", orderHandler.ListSellerOrders)
		api.GET("/orders/:"+httpwrap.OrderIdKey, orderHandler.GetOrder)
		api.PUT("/orders/:"+httpwrap.OrderIdKey+"/pay", orderHandler.Pay)
		api.PUT("/orders/:"+httpwrap.OrderIdKey+"/ship", orderHandler.Ship)
		api.PUT("/orders/:"+httpwrap.OrderIdKey+"/complete", orderHandler.Complete)
		api.PUT("/orders/:"+httpwrap.OrderIdKey+"/cancel", orderHandler.Cancel)

		api.GET("/account/balance", orderHandler.GetBalance)
	}

	return router
}
