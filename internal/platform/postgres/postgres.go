package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
// dsn may be a postgres:// URL or a key/value connection string.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgres.Open(normalized), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Dial connects to PostgreSQL and returns the DB plus a cleanup function
// that closes the pool.
func Dial(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func(), error) {
	db, err := Connect(ctx, dsn)
	if err != nil {
		return nil, func() {}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	if logger != nil {
		logger.Info("postgres connection established", slog.String("target", Describe(dsn)))
	}
	return db, func() { _ = sqlDB.Close() }, nil
}

// NormalizeDSN converts URL-style DSNs into the key/value form.
func NormalizeDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", fmt.Errorf("postgres DSN is empty")
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid postgres DSN: %w", err)
		}
		return converted, nil
	}
	return dsn, nil
}

// Describe renders the connection target without credentials, for logs.
func Describe(dsn string) string {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return "invalid dsn"
	}
	var parts []string
	for _, field := range strings.Fields(normalized) {
		key, _, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "host", "port", "dbname", "user", "sslmode":
			parts = append(parts, strings.ReplaceAll(field, "'", ""))
		}
	}
	return strings.Join(parts, " ")
}
