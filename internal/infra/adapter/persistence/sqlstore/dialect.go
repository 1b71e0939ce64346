// Package sqlstore implements the content stores on top of database/sql.
// One generic table engine serves every collection; a Dialect captures the differences
// between PostgreSQL, SQLite and MySQL.
package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Dialect describes how statements are written for one database engine.
type Dialect struct {
	// Name is the migration directory and config value ("postgres", "sqlite", "mysql").
	Name string
	// DriverName is the database/sql driver registered for the engine.
	DriverName string
	// Returning reports support for UPDATE/INSERT ... RETURNING.
	Returning bool
}

var (
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", Returning: true}
	SQLite   = Dialect{Name: "sqlite", DriverName: "sqlite", Returning: true}
	MySQL    = Dialect{Name: "mysql", DriverName: "mysql", Returning: false}
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver(SQLite.DriverName, sqlx.QUESTION)
}

// DialectFor resolves a configured driver name.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
}

// DB bundles a connection pool with its dialect and the clock used for timestamps.
type DB struct {
	x       *sqlx.DB
	dialect Dialect
	now     func() time.Time
}

// Option customizes a DB.
type Option func(*DB)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// New wraps an open pool. The pool is shared by every store built from the returned DB.
func New(db *sql.DB, d Dialect, opts ...Option) *DB {
	out := &DB{
		x:       sqlx.NewDb(db, d.DriverName),
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(out)
	}
	return out
}

// Dialect returns the engine description.
func (db *DB) Dialect() Dialect { return db.dialect }
