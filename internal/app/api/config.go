package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends accepted by DATABASE_DRIVER.
const (
	DriverAuto     = "auto"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port            string
	ServiceName     string
	Environment     string
	LogLevel        string
	DatabaseDriver  string
	PostgresDSN     string
	SQLitePath      string
	OTLPEndpoint    string
	OTLPInsecure    bool
	ShutdownTimeout time.Duration
	GinMode         string
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LoadConfig reads an optional .env file and the process environment,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVICE_NAME", "delivery-api")
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverAuto)
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("SQLITE_PATH", "delivery.db")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("GIN_MODE", "release")
	v.AutomaticEnv()

	cfg := Config{
		Port:            strings.TrimPrefix(strings.TrimSpace(v.GetString("PORT")), ":"),
		ServiceName:     strings.TrimSpace(v.GetString("SERVICE_NAME")),
		Environment:     strings.TrimSpace(v.GetString("ENVIRONMENT")),
		LogLevel:        strings.TrimSpace(v.GetString("LOG_LEVEL")),
		DatabaseDriver:  strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
		PostgresDSN:     strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		SQLitePath:      strings.TrimSpace(v.GetString("SQLITE_PATH")),
		OTLPEndpoint:    strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:    v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		GinMode:         strings.TrimSpace(v.GetString("GIN_MODE")),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values LoadConfig cannot default away.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	if c.ServiceName == "" {
		return errors.New("SERVICE_NAME must not be empty")
	}
	switch c.DatabaseDriver {
	case DriverAuto, DriverMemory:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when DATABASE_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when DATABASE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be one of auto, postgres, sqlite, memory, got %q", c.DatabaseDriver)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be a positive duration")
	}
	return nil
}
