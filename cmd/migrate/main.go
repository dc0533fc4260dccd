package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/isaacnngt/pedido-unijovem/internal/app/api"
	"github.com/isaacnngt/pedido-unijovem/internal/platform/migrations"
	platformobservability "github.com/isaacnngt/pedido-unijovem/internal/platform/observability"
	platformpostgres "github.com/isaacnngt/pedido-unijovem/internal/platform/postgres"
	platformsqlite "github.com/isaacnngt/pedido-unijovem/internal/platform/sqlite"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := platformobservability.NewLogger(os.Stdout, cfg.LogLevel)

	db, cleanup, err := open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer cleanup()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	logger.Info("migrations applied", slog.String("driver", db.Dialector.Name()))
	return nil
}

var errNoDatabase = errors.New("POSTGRES_DSN not set; nothing to migrate for the memory store")

func open(ctx context.Context, cfg api.Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	if cfg.DatabaseDriver == api.DriverSQLite {
		db, err := platformsqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = sqlDB.Close() }, nil
	}
	if cfg.PostgresDSN == "" {
		return nil, nil, errNoDatabase
	}
	return platformpostgres.Dial(ctx, cfg.PostgresDSN, logger)
}
