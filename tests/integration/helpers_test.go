package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/sumor0v0/second-hand-trade/internal/market/application"
	"github.com/sumor0v0/second-hand-trade/internal/market/domain"
	"github.com/sumor0v0/second-hand-trade/internal/market/infrastructure/postgres"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
	"github.com/sumor0v0/second-hand-trade/migrations"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "market_db"
	dbUser     = "admin"
	dbPassword = "password"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.OrderEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := make([]domain.OrderEventType, 0, len(p.events))
	for _, event := range p.events {
		result = append(result, event.Type)
	}
	return result
}

type market struct {
	pool      *pgxpool.Pool
	orders    *application.OrderCase
	accounts  *postgres.AccountsRepository
	publisher *recordingPublisher
}

func setupDatabase(t *testing.T) database.PostgresSettings {
	t.Helper()

	pg, err := tcpostgres.Run(
		t.Context(),
		"postgres:16-alpine",
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername(dbUser),
		tcpostgres.WithPassword(dbPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	dbHost, err := pg.Host(t.Context())
	require.NoError(t, err)
	dbPort, err := pg.MappedPort(t.Context(), "5432/tcp")
	require.NoError(t, err)

	dbSettings := database.PostgresSettings{
		User:       dbUser,
		Password:   dbPassword,
		Host:       dbHost,
		Port:       dbPort.Port(),
		DBName:     dbName,
		SSlEnabled: false,
	}

	require.NoError(t, database.MigrateDatabase(dbSettings.GetUrl(), migrations.FS, migrations.Dir))

	return dbSettings
}

func setupMarket(t *testing.T, lockTimeout time.Duration) *market {
	t.Helper()

	dbSettings := setupDatabase(t)

	pool, err := pgxpool.New(t.Context(), dbSettings.GetUrl())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logger := logging.StdoutLogger
	accounts := postgres.NewAccountsRepository(pool)
	publisher := &recordingPublisher{}

	orderCase := application.NewOrderCase(
		database.NewDelegateTxManager(pool, lockTimeout, logger),
		postgres.NewItemsRepository(),
		postgres.NewOrdersRepository(pool),
		accounts,
		publisher,
		logger,
	)

	return &market{
		pool:      pool,
		orders:    orderCase,
		accounts:  accounts,
		publisher: publisher,
	}
}

func (m *market) createAccount(t *testing.T, userId int64, balance string) {
	t.Helper()
	require.NoError(t, m.accounts.EnsureAccountCreated(t.Context(), userId, decimal.RequireFromString(balance)))
}

// createItem lists an item the way the external catalogue service would.
func (m *market) createItem(t *testing.T, sellerId int64, title, price string) int64 {
	t.Helper()

	var itemId int64
	err := m.pool.QueryRow(t.Context(),
		`INSERT INTO items (seller_id, title, price) VALUES ($1, $2, $3::numeric) RETURNING id`,
		sellerId, title, price,
	).Scan(&itemId)
	require.NoError(t, err)

	return itemId
}

func (m *market) balance(t *testing.T, userId int64) decimal.Decimal {
	t.Helper()

	balance, err := m.accounts.FetchBalance(t.Context(), userId)
	require.NoError(t, err)
	return balance
}

func (m *market) itemStatus(t *testing.T, itemId int64) domain.ItemStatus {
	t.Helper()

	var status string
	require.NoError(t, m.pool.QueryRow(t.Context(), `SELECT status FROM items WHERE id = $1`, itemId).Scan(&status))
	return domain.ItemStatus(status)
}

func (m *market) orderStatus(t *testing.T, orderId int64) domain.OrderStatus {
	t.Helper()

	var status string
	require.NoError(t, m.pool.QueryRow(t.Context(), `SELECT status FROM orders WHERE id = $1`, orderId).Scan(&status))
	return domain.OrderStatus(status)
}

func (m *market) transferCount(t *testing.T, orderId int64) int {
	t.Helper()

	var count int
	require.NoError(t, m.pool.QueryRow(t.Context(), `SELECT count(*) FROM balance_transfers WHERE order_id = $1`, orderId).Scan(&count))
	return count
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
