package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	deliveryserver "github.com/isaacnngt/pedido-unijovem/go"

	ordersmemory "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/memory"
	ordersobs "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/application"
	ordersports "github.com/isaacnngt/pedido-unijovem/internal/domains/orders/ports"
	"github.com/isaacnngt/pedido-unijovem/internal/platform/ginx"
	"github.com/isaacnngt/pedido-unijovem/internal/platform/migrations"
	platformobservability "github.com/isaacnngt/pedido-unijovem/internal/platform/observability"
	platformpostgres "github.com/isaacnngt/pedido-unijovem/internal/platform/postgres"
	platformsqlite "github.com/isaacnngt/pedido-unijovem/internal/platform/sqlite"
)

// Run boots the delivery HTTP API and blocks until ctx is cancelled or the
// server fails. Cancellation triggers a graceful shutdown bounded by
// cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := instruments.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	repo, cleanupRepo, err := buildOrderRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepo()

	orderService := ordersobs.New(
		ordersapp.NewService(repo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	gin.SetMode(cfg.GinMode)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg.ServiceName, logger, orderService),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, server, cfg.ShutdownTimeout, logger)
}

func newRouter(serviceName string, logger *slog.Logger, service ordersports.Service) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		ginx.RequestID(),
		ginx.AccessLog(logger),
	)
	return deliveryserver.NewRouterWithGinEngine(router, deliveryserver.ApiHandleFunctions{
		PedidosAPI: deliveryserver.NewPedidosAPI(service),
	})
}

func serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("delivery API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("delivery API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down delivery API", slog.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

// buildOrderRepository selects the order store for cfg.DatabaseDriver. Under
// auto-detection a failing postgres connection degrades to the memory store.
func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func(), error) {
	switch cfg.DatabaseDriver {
	case DriverMemory:
		logger.Info("order repository configured in memory")
		return ordersmemory.NewRepository(), func() {}, nil
	case DriverSQLite:
		db, err := platformsqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		repo, cleanup, err := migratedRepository(db)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("order repository configured with sqlite", slog.String("path", cfg.SQLitePath))
		return repo, cleanup, nil
	case DriverPostgres:
		repo, cleanup, err := postgresRepository(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to configure postgres: %w", err)
		}
		return repo, cleanup, nil
	}

	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}, nil
	}
	repo, cleanup, err := postgresRepository(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}, nil
	}
	return repo, cleanup, nil
}

func postgresRepository(ctx context.Context, dsn string, logger *slog.Logger) (ordersports.Repository, func(), error) {
	db, cleanup, err := platformpostgres.Dial(ctx, dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup, nil
}

func migratedRepository(db *gorm.DB) (ordersports.Repository, func(), error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = sqlDB.Close() }
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return orderspostgres.NewRepository(db), cleanup, nil
}
