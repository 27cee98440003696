package bootstrap

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sumor0v0/second-hand-trade/internal/market/infrastructure/kafka"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/database"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/env"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

const defaultEnvFile = ".env"

type MarketConfig struct {
	DbSettings database.PostgresSettings
	HttpPort   string
	JwtSecret  string

	KafkaBrokers    []string
	KafkaOrderTopic string

	LockTimeout    time.Duration
	StartBalance   decimal.Decimal
	MigrateOnStart bool
}

func DefaultConfig() MarketConfig {
	return MarketConfig{
		DbSettings: database.PostgresSettings{
			User:       "admin",
			Password:   "password",
			Host:       "localhost",
			Port:       "5432",
			DBName:     "market_db",
			SSlEnabled: false,
		},
		HttpPort:        ":8080",
		JwtSecret:       "",
		KafkaOrderTopic: "market.orders",
		LockTimeout:     3 * time.Second,
		StartBalance:    decimal.Zero,
		MigrateOnStart:  true,
	}
}

// LoadConfig applies, in order: defaults, the .env file if there is one, process environment.
func LoadConfig(logger logging.Logger, envFiles ...string) (MarketConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{defaultEnvFile}
	}

	if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("no .env file found, relying on environment variables", "files", envFiles)
	}

	cfg := DefaultConfig()

	env.TrySetFromEnv(env.EnvHttpPort, &cfg.HttpPort)
	env.TrySetFromEnv(env.EnvDatabaseHost, &cfg.DbSettings.Host)
	env.TrySetFromEnv(env.EnvDatabasePort, &cfg.DbSettings.Port)
	env.TrySetFromEnv(env.EnvDatabaseUser, &cfg.DbSettings.User)
	env.TrySetFromEnv(env.EnvDatabasePassword, &cfg.DbSettings.Password)
	env.TrySetFromEnv(env.EnvDatabaseName, &cfg.DbSettings.DBName)
	env.TrySetFromEnv(env.EnvJwtSecret, &cfg.JwtSecret)
	env.TrySetFromEnv(env.EnvKafkaOrderTopic, &cfg.KafkaOrderTopic)

	if err := env.TrySetBoolFromEnv(env.EnvDatabaseSSL, &cfg.DbSettings.SSlEnabled); err != nil {
		return MarketConfig{}, fmt.Errorf("invalid %s: %w", env.EnvDatabaseSSL, err)
	}
	if err := env.TrySetBoolFromEnv(env.EnvMigrateOnStart, &cfg.MigrateOnStart); err != nil {
		return MarketConfig{}, fmt.Errorf("invalid %s: %w", env.EnvMigrateOnStart, err)
	}
	if err := env.TrySetDurationFromEnv(env.EnvLockTimeout, &cfg.LockTimeout); err != nil {
		return MarketConfig{}, fmt.Errorf("invalid %s: %w", env.EnvLockTimeout, err)
	}

	brokers := ""
	env.TrySetFromEnv(env.EnvKafkaBrokers, &brokers)
	cfg.KafkaBrokers = kafka.ParseBrokers(brokers)

	startBalance := ""
	env.TrySetFromEnv(env.EnvStartBalance, &startBalance)
	if startBalance != "" {
		parsed, err := decimal.NewFromString(startBalance)
		if err != nil {
			return MarketConfig{}, fmt.Errorf("invalid %s: %w", env.EnvStartBalance, err)
		}
		cfg.StartBalance = parsed
	}

	if err := cfg.Validate(); err != nil {
		return MarketConfig{}, err
	}

	return cfg, nil
}

func (c MarketConfig) Validate() error {
	if c.JwtSecret == "" {
		return fmt.Errorf("%s must be set", env.EnvJwtSecret)
	}
	if c.StartBalance.IsNegative() {
		return fmt.Errorf("%s must not be negative", env.EnvStartBalance)
	}
	if c.LockTimeout < 0 {
		return fmt.Errorf("%s must not be negative", env.EnvLockTimeout)
	}

	return nil
}
