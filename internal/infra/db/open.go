// Package db opens the configured database and applies the embedded schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dinas-portal/internal/infra/adapter/persistence/sqlstore"
	"dinas-portal/internal/observability/metrics"
	"dinas-portal/internal/resilience/retry"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// Config selects the engine and connection string.
type Config struct {
	// Driver is postgres, sqlite or mysql.
	Driver string
	DSN    string
	Pool   ConnectionConfig
	// Retry governs the initial ping. A zero value pings once.
	Retry retry.Config
}

// Open creates and verifies a connection pool for the configured engine.
func Open(ctx context.Context, cfg Config) (*sql.DB, sqlstore.Dialect, error) {
	dialect, err := sqlstore.DialectFor(cfg.Driver)
	if err != nil {
		return nil, sqlstore.Dialect{}, err
	}
	if cfg.DSN == "" {
		return nil, dialect, fmt.Errorf("database dsn is empty")
	}

	dsn, err := normalizeDSN(dialect, cfg.DSN)
	if err != nil {
		return nil, dialect, err
	}

	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("open %s: %w", dialect.Name, err)
	}

	pool := cfg.Pool
	if dialect == sqlstore.SQLite && isMemoryDSN(dsn) {
		// every connection to :memory: is a separate database
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
		pool.ConnMaxLifetime = 0
		pool.ConnMaxIdleTime = 0
	}
	applyPool(db, pool)

	slog.Info("database connection pool configured",
		slog.String("driver", dialect.Name),
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))

	if err := retry.WithBackoff(ctx, cfg.Retry, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	}); err != nil {
		_ = db.Close()
		return nil, dialect, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connection established successfully", slog.String("driver", dialect.Name))
	return db, dialect, nil
}

func applyPool(db *sql.DB, cfg ConnectionConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// normalizeDSN forces the MySQL options the stores rely on: DATETIME columns scan
// into time.Time in UTC, and UPDATE reports matched rather than changed rows.
func normalizeDSN(d sqlstore.Dialect, dsn string) (string, error) {
	if d != sqlstore.MySQL {
		return dsn, nil
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// ReportStats publishes pool statistics to the connection gauges until ctx is done.
func ReportStats(ctx context.Context, db *sql.DB, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		metrics.UpdateDBStats(db.Stats())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
