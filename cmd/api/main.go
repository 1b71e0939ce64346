package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"dinas-portal/internal/config"
	"dinas-portal/internal/infra/adapter/persistence/sqlstore"
	"dinas-portal/internal/infra/db"
	"dinas-portal/internal/observability/logging"
	"dinas-portal/internal/observability/tracing"
	"dinas-portal/internal/resilience/retry"
)

// @title           Dinas Portal API
// @version         1.0
// @description     Content API for the agency portal: news, announcements, profile pages and downloads.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin token from /auth/token, sent as "Bearer {token}".

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	slog.SetDefault(logger)

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Version:     cfg.Version,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	database, dialect, err := db.Open(ctx, db.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
		Pool: db.ConnectionConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		},
		Retry: retry.DBStartupConfig(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if cfg.Database.MigrateOnStart {
		if err := db.MigrateUp(ctx, database, dialect); err != nil {
			return err
		}
		if version, err := db.MigrationVersion(ctx, database, dialect); err == nil {
			logger.Info("database migrated", slog.String("driver", cfg.Database.Driver), slog.Int64("schema_version", version))
		}
	}

	srv, err := newServer(cfg, logger, database, sqlstore.New(database, dialect))
	if err != nil {
		return err
	}
	var background []func(context.Context)
	if cfg.Database.StatsInterval > 0 {
		background = append(background, func(ctx context.Context) {
			db.ReportStats(ctx, database, cfg.Database.StatsInterval)
		})
	}
	return serve(ctx, cfg, logger, srv, background...)
}

// serve runs the HTTP server and its background loops until ctx is cancelled,
// then drains in-flight requests within the shutdown timeout.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, srv *server, background ...func(context.Context)) error {
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version),
			slog.Bool("auth_enabled", cfg.Auth.Enabled()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	if srv.Limiter != nil {
		g.Go(func() error {
			srv.Limiter.RunCleanup(gctx, time.Minute, cfg.Hits.IdleTTL)
			return nil
		})
	}
	for _, fn := range background {
		g.Go(func() error {
			fn(gctx)
			return nil
		})
	}
	return g.Wait()
}
