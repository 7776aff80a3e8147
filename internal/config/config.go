package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration
type Config struct {
	// Server
	Env          string        `envconfig:"ENV" default:"development"`
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	CORSOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Database
	DB DatabaseConfig

	// Auth
	JWTSecret    string `envconfig:"JWT_SECRET" default:"fallback-secret-key-for-dev-only"`
	ImportAPIKey string `envconfig:"IMPORT_API_KEY"`

	// Import
	ImportMaxRecords int `envconfig:"IMPORT_MAX_RECORDS" default:"5000"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver         string `envconfig:"DB_DRIVER" default:"postgres"`
	Host           string `envconfig:"DB_HOST" default:"localhost"`
	Port           string `envconfig:"DB_PORT" default:"5432"`
	User           string `envconfig:"DB_USER" default:"budgetly"`
	Password       string `envconfig:"DB_PASSWORD" default:"budgetly"`
	Name           string `envconfig:"DB_NAME" default:"budgetly"`
	SSLMode        string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"budgetly.db"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"migrations"`
}

// DSN returns the PostgreSQL key/value connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the PostgreSQL connection URL used by golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Load loads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.DB.Driver = strings.ToLower(cfg.DB.Driver)
	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", cfg.DB.Driver, DriverPostgres, DriverSQLite)
	}
	if cfg.ImportMaxRecords <= 0 {
		return nil, fmt.Errorf("IMPORT_MAX_RECORDS must be positive, got %d", cfg.ImportMaxRecords)
	}

	return &cfg, nil
}
