// Package config loads per-service configuration from environment variables.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// AuthConfig holds the Authentication Service settings.
type AuthConfig struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the lifetime of an issued bearer token.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=30m"`
	// SweepInterval is how often the background sweep evicts expired tokens.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL, default=60s"`
	// TokenStore selects the token registry backend: "memory" or "redis".
	TokenStore string `env:"TOKEN_STORE, default=memory"`

	Redis RedisConfig
}

// RedisConfig holds the settings for the Redis token store backend.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// TransactionConfig holds the Transaction Service settings.
type TransactionConfig struct {
	Port     string `env:"PORT,      default=8081"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AuthServiceURL is the base URL of the Authentication Service.
	AuthServiceURL string `env:"AUTH_SERVICE_URL, default=http://localhost:8080"`
	// AuthVerifyTimeout bounds every token verification call to the
	// Authentication Service.
	AuthVerifyTimeout time.Duration `env:"AUTH_VERIFY_TIMEOUT, default=10s"`

	Mongo MongoConfig
}

// MongoConfig holds the settings for the transaction record store.
type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fraud_detection"`
}

// LoadAuth reads the Authentication Service configuration from the environment.
func LoadAuth(ctx context.Context) (*AuthConfig, error) {
	var cfg AuthConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadTransaction reads the Transaction Service configuration from the environment.
func LoadTransaction(ctx context.Context) (*TransactionConfig, error) {
	var cfg TransactionConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
