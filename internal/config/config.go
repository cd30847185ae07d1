// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/vladamisici/food-analyzer-sub001/internal/store"
)

// Config is the full application configuration.
type Config struct {
	// Env names the runtime environment (development, production).
	Env string `env:"APP_ENV,default=development"`

	HTTP      HTTP
	Store     store.Config
	API       API
	Secrets   Secrets
	Telemetry Telemetry
}

// HTTP configures the local HTTP facade.
type HTTP struct {
	Port            int           `env:"APP_PORT,default=8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,default=10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT,default=30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT,default=10s"`

	// RateLimit is requests per minute per client IP.
	RateLimit int `env:"HTTP_RATE_LIMIT,default=120"`
}

// API configures the remote food-analysis service client.
type API struct {
	// Empty base URLs fall back to the client's production defaults.
	AuthBaseURL string        `env:"API_AUTH_BASE_URL"`
	FoodBaseURL string        `env:"API_FOOD_BASE_URL"`
	Timeout     time.Duration `env:"API_TIMEOUT,default=30s"`
}

// Secrets configures the encrypted secret store.
type Secrets struct {
	Path string `env:"SECRETS_PATH,default=secrets.enc"`

	// KeyHex is the hex-encoded 32-byte encryption key.
	KeyHex string `env:"SECRETS_KEY,required"`
}

// Key decodes the hex encryption key.
func (s Secrets) Key() ([]byte, error) {
	key, err := hex.DecodeString(s.KeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode secrets key: %w", err)
	}
	return key, nil
}

// Telemetry configures the OpenTelemetry exporters.
type Telemetry struct {
	Enabled      bool   `env:"OTEL_ENABLED,default=false"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT,default=localhost:4317"`
}

// Load reads .env when present, then decodes the environment. A missing
// .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}
