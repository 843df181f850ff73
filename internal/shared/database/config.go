package database

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config selects and locates the durable store.
type Config struct {
	Driver         string        `env:"STORE_DRIVER" envDefault:"mongodb"`
	MongoDBURI     string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName   string        `env:"DATABASE_NAME" envDefault:"chess_fen"`
	PostgresDSN    string        `env:"POSTGRES_DSN"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
	Redis          RedisConfig
}

// RedisConfig is optional; an empty Addr disables Redis.
type RedisConfig struct {
	Addr         string `env:"REDIS_ADDR"`
	Password     string `env:"REDIS_PASSWORD"`
	Database     int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize     int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	EnableTLS    bool   `env:"REDIS_TLS" envDefault:"false"`
}

// LoadConfig reads the store configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMongoDB:
		if c.MongoDBURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the %s driver", DriverMongoDB)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the %s driver", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s, %s or %s)", c.Driver, DriverMongoDB, DriverPostgres, DriverMemory)
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	return nil
}
