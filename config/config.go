package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds everything the platform reads from the environment.
type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`
	DBUser   string `envconfig:"DB_USER" default:"root"`
	DBPass   string `envconfig:"DB_PASS" default:""`
	DBHost   string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort   string `envconfig:"DB_PORT" default:"3306"`
	DBName   string `envconfig:"DB_NAME" default:"frituurapp"`
	// SQLitePath is only used when DB_DRIVER=sqlite (local dev / tests).
	SQLitePath string `envconfig:"SQLITE_PATH" default:"frituurapp.db"`

	CheckoutAPIKey        string `envconfig:"CHECKOUT_API_KEY"`
	CheckoutWebhookSecret string `envconfig:"CHECKOUT_WEBHOOK_SECRET"`
	CheckoutBaseURL       string `envconfig:"CHECKOUT_BASE_URL" default:"https://api.checkout-provider.example"`

	GeocodeAPIKey  string `envconfig:"GEOCODE_API_KEY"`
	GeocodeBaseURL string `envconfig:"GEOCODE_BASE_URL" default:"https://maps.geocode-provider.example"`

	POSBaseURL string `envconfig:"POS_BASE_URL" default:"https://pos-provider.example"`
	POSAPIKey  string `envconfig:"POS_API_KEY"`
}

// Load reads the environment into a Config. godotenv.Load is called by the
// caller before this so a local .env is already in place.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// InitDB opens the configured database. MySQL in production, SQLite for
// local development.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
