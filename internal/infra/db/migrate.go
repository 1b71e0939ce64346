package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"dinas-portal/internal/infra/adapter/persistence/sqlstore"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

var gooseDialects = map[string]string{
	sqlstore.Postgres.Name: "pgx",
	sqlstore.SQLite.Name:   "sqlite3",
	sqlstore.MySQL.Name:    "mysql",
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// MigrateUp applies every pending migration for the dialect.
func MigrateUp(ctx context.Context, db *sql.DB, d sqlstore.Dialect) error {
	return withGoose(d, func() error {
		return gooseUpContext(ctx, db, ".")
	})
}

// MigrateDown rolls the schema back to an empty database.
// Use with caution: this drops every content table.
func MigrateDown(ctx context.Context, db *sql.DB, d sqlstore.Dialect) error {
	return withGoose(d, func() error {
		return goose.DownToContext(ctx, db, ".", 0)
	})
}

// MigrationVersion reports the current schema version.
func MigrationVersion(ctx context.Context, db *sql.DB, d sqlstore.Dialect) (int64, error) {
	var v int64
	err := withGoose(d, func() error {
		var err error
		v, err = goose.GetDBVersionContext(ctx, db)
		return err
	})
	return v, err
}

func withGoose(d sqlstore.Dialect, fn func() error) error {
	dialect, ok := gooseDialects[d.Name]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", d.Name)
	}
	sub, err := fs.Sub(migrations, "migrations/"+d.Name)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())
	if err := fn(); err != nil {
		return fmt.Errorf("migrate %s: %w", d.Name, err)
	}
	return nil
}
