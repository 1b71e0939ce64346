// Command seed loads initial portal content from a YAML file into the configured database.
//
//	seed -file cmd/seed/fixtures.yaml
//	seed -reset   # start from empty tables
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dinas-portal/internal/config"
	"dinas-portal/internal/infra/adapter/persistence/sqlstore"
	"dinas-portal/internal/infra/db"
	"dinas-portal/internal/observability/logging"
	"dinas-portal/internal/resilience/retry"
	"dinas-portal/internal/seed"
	"dinas-portal/internal/usecase/content"
)

func main() {
	file := flag.String("file", "cmd/seed/fixtures.yaml", "path to the YAML fixture file")
	migrate := flag.Bool("migrate", true, "apply pending migrations first")
	reset := flag.Bool("reset", false, "drop all content tables before seeding (implies -migrate)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *file, *migrate || *reset, *reset); err != nil {
		slog.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, file string, migrate, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(logging.NewLogger(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}))

	fixtures, err := seed.ReadFile(file)
	if err != nil {
		return err
	}

	database, dialect, err := db.Open(ctx, db.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
		Pool:   db.DefaultConnectionConfig(),
		Retry:  retry.DBStartupConfig(),
	})
	if err != nil {
		return err
	}
	defer database.Close()

	if reset {
		slog.Warn("seed: dropping content tables", slog.String("driver", cfg.Database.Driver))
		if err := db.MigrateDown(ctx, database, dialect); err != nil {
			return err
		}
	}
	if migrate {
		if err := db.MigrateUp(ctx, database, dialect); err != nil {
			return err
		}
	}

	store := sqlstore.New(database, dialect)
	res, err := seed.Load(ctx, fixtures, seed.Services{
		News:          content.NewNewsService(sqlstore.NewsStore(store)),
		Announcements: content.NewAnnouncementService(sqlstore.AnnouncementStore(store)),
		ProfilePages:  content.NewProfilePageService(sqlstore.ProfilePageStore(store)),
		Downloads:     content.NewDownloadService(sqlstore.DownloadStore(store)),
	})
	if err != nil {
		return err
	}
	slog.Info("seed completed",
		slog.String("file", file),
		slog.Int("created", res.Created),
		slog.Int("skipped", res.Skipped))
	return nil
}
