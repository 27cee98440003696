package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sumor0v0/second-hand-trade/internal/market/application"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	httpwrap "github.com/sumor0v0/second-hand-trade/internal/market/infrastructure/http"
	"github.com/sumor0v0/second-hand-trade/internal/market/infrastructure/kafka"
	"github.com/sumor0v0/second-hand-trade/internal/market/infrastructure/postgres"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/jwt"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/metrics"
	"github.com/sumor0v0/second-hand-trade/migrations"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
	eventBufferSize = 256
	metricsService  = "orders"
)

type MarketApp struct {
	cfg    MarketConfig
	logger logging.Logger

	server *http.Server
	dbpool *pgxpool.Pool
}

func NewMarketApp(cfg MarketConfig, logger logging.Logger) *MarketApp {
	return &MarketApp{
		cfg:    cfg,
		logger: logger,
	}
}

// Run serves the HTTP API and the event publisher until ctx is cancelled or one of them fails.
func (a *MarketApp) Run(ctx context.Context) error {
	logger := a.logger
	cfg := a.cfg
	dbURL := cfg.DbSettings.GetUrl()

	if cfg.MigrateOnStart {
		if err := database.MigrateDatabase(dbURL, migrations.FS, migrations.Dir); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	dbpool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.dbpool = dbpool

	txManager := database.NewDelegateTxManager(dbpool, cfg.LockTimeout, logger)

	itemsRepository := postgres.NewItemsRepository()
	ordersRepository := postgres.NewOrdersRepository(dbpool)
	accountsRepository := postgres.NewAccountsRepository(dbpool)

	var publisher domain.OrderEventPublisher = kafka.NopOrderPublisher{}
	var asyncPublisher *kafka.AsyncOrderPublisher
	if len(cfg.KafkaBrokers) > 0 {
		asyncPublisher = kafka.NewAsyncOrderPublisher(kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic), eventBufferSize, logger)
		publisher = asyncPublisher
	} else {
		logger.Warn("kafka brokers are not configured, order events are discarded")
	}

	orderCase := application.NewOrderCase(txManager, itemsRepository, ordersRepository, accountsRepository, publisher, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := newRouter(
		httpwrap.NewOrderHandler(orderCase, logger),
		httpwrap.NewAuthMiddleware(cfg.JwtSecret, jwt.NewJWTTokenParser(), logger),
		httpwrap.NewAccountMiddleware(accountsRepository, cfg.StartBalance, logger),
		metrics.NewServerMetrics(metricsService, registry),
		registry,
		dbpool,
	)

	a.server = &http.Server{
		Addr:              cfg.HttpPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HttpPort)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error while starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.stopServer()
		return nil
	})

	if asyncPublisher != nil {
		g.Go(func() error {
			return asyncPublisher.Run(gctx)
		})
	}

	return g.Wait()
}

func (a *MarketApp) Shutdown() {
	a.stopServer()

	if a.dbpool != nil {
		a.dbpool.Close()
	}
}

func (a *MarketApp) stopServer() {
	if a.server == nil {
		return
	}

	a.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown failed", "error", err.Error())
	}
}
