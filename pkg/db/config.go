package db

import "time"

// Config holds PostgreSQL connection parameters. All fields can be
// populated from environment variables.
type Config struct {
	// ConnectionString is a postgres:// connection URL.
	ConnectionString string `env:"DATABASE_URL" yaml:"url"`

	// MigrationsTable names the goose version-tracking table.
	MigrationsTable string `env:"DATABASE_MIGRATIONS_TABLE" envDefault:"schema_migrations" yaml:"migrations_table"`

	// HealthCheckPeriod is how often the pool pings idle connections.
	HealthCheckPeriod time.Duration `env:"DATABASE_HEALTHCHECK_PERIOD" envDefault:"1m" yaml:"healthcheck_period"`

	// MaxConnIdleTime closes connections idle longer than this; keeps
	// pools behind PgBouncer-style proxies from going stale.
	MaxConnIdleTime time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" envDefault:"10m" yaml:"max_conn_idle_time"`

	// MaxConnLifetime bounds total connection age so the pool adapts to
	// failovers.
	MaxConnLifetime time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"30m" yaml:"max_conn_lifetime"`

	// RetryAttempts and RetryInterval control startup retries for
	// transient network failures.
	RetryAttempts int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"`

	// MaxOpenConns and MinConns bound the pool size.
	MaxOpenConns int32 `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10" yaml:"max_open_conns"`
	MinConns     int32 `env:"DATABASE_MIN_CONNS" envDefault:"5" yaml:"min_conns"`
}
