package env

const (
	EnvHttpPort = "HTTP_PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvDatabaseHost     = "DB_HOST"
	EnvDatabasePort     = "DB_PORT"
	EnvDatabaseUser     = "DB_USER"
	EnvDatabasePassword = "DB_PASSWORD"
	EnvDatabaseName     = "DB_NAME"
	EnvDatabaseSSL      = "DB_SSL"

	EnvJwtSecret = "JWT_SECRET"

	EnvKafkaBrokers    = "KAFKA_BROKERS"
	EnvKafkaOrderTopic = "KAFKA_ORDER_TOPIC"

	EnvLockTimeout    = "LOCK_TIMEOUT"
	EnvStartBalance   = "START_BALANCE"
	EnvMigrateOnStart = "MIGRATE_ON_START"
)
