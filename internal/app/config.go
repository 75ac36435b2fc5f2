package app

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends for the order collection blob.
const (
	StoreBackendFile  = "file"
	StoreBackendRedis = "redis"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:"127.0.0.1:8735"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"`
	StorePath    string `envconfig:"STORE_PATH" default:"data/purchase_orders.json"`
	StoreKey     string `envconfig:"STORE_KEY" default:"purchaseOrders"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	CompanyName    string `envconfig:"COMPANY_NAME"`
	CompanyAddress string `envconfig:"COMPANY_ADDRESS"`
	CompanyPhone   string `envconfig:"COMPANY_PHONE"`
	CompanyEmail   string `envconfig:"COMPANY_EMAIL"`

	// StampRegistry maps staff names to stamp image paths,
	// e.g. STAMP_REGISTRY="山田太郎:stamps/yamada.png,佐藤花子:stamps/sato.png".
	StampRegistry map[string]string `envconfig:"STAMP_REGISTRY"`

	PDFFontPath string `envconfig:"PDF_FONT_PATH"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch cfg.StoreBackend {
	case StoreBackendFile, StoreBackendRedis:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
