// Package config loads the storefront configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment represents the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool {
	return e == Production
}

type Config struct {
	AppEnv   Environment `envconfig:"APP_ENV" default:"development"`
	LogLevel string      `envconfig:"LOG_LEVEL" default:"info"`

	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	GRPCAddr string `envconfig:"GRPC_ADDR" default:":9090"`

	Database DatabaseConfig `envconfig:"DATABASE"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Auth     AuthConfig     `envconfig:"AUTH"`
	Tracing  TracingConfig  `envconfig:"OTEL"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	Path        string        `envconfig:"PATH" default:"./data/storefront.db"`
	BusyTimeout time.Duration `envconfig:"BUSY_TIMEOUT" default:"5s"`
}

// RedisConfig configures the replay and product caches (REDIS_*). An empty
// Addr disables Redis and the services fall back to a no-op cache.
type RedisConfig struct {
	Addr            string        `envconfig:"ADDR"`
	IdempotencyTTL  time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	ProductCacheTTL time.Duration `envconfig:"PRODUCT_CACHE_TTL" default:"5m"`
}

type AuthConfig struct {
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`
}

// TracingConfig follows the standard OTel env names. An empty Endpoint
// keeps the global no-op tracer provider.
type TracingConfig struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"storefront"`
	Endpoint    string `envconfig:"EXPORTER_OTLP_ENDPOINT"`
}

// Load reads .env (if any) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Database.Path == "" {
		return errors.New("config: DATABASE_PATH must not be empty")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("config: AUTH_BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	return nil
}
