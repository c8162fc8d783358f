// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the SQL content store: connection setup, migrations,
// typed queries and seeding.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"
	_ "github.com/mattn/go-sqlite3"    // cgo SQLite, registers "sqlite3"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure Go SQLite, registers "sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// sqlitePragmas are applied to every pooled connection, not just the first.
var sqlitePragmas = []struct{ name, value string }{
	{"journal_mode", "WAL"},
	{"busy_timeout", "5000"},
	{"synchronous", "NORMAL"},
	{"foreign_keys", "ON"},
}

// IsSQLite reports whether driver is one of the SQLite drivers.
func IsSQLite(driver string) bool {
	return driver == "sqlite" || driver == "sqlite3"
}

// sqliteDSN appends the pragmas to path in the syntax of each driver:
// modernc reads _pragma=name(value), mattn reads _name=value.
func sqliteDSN(driver, path string) string {
	q := url.Values{}
	for _, p := range sqlitePragmas {
		if driver == "sqlite" {
			q.Add("_pragma", p.name+"("+p.value+")")
		} else {
			q.Add("_"+p.name, p.value)
		}
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// NewDB opens and pings a connection pool. The site only reads content, so
// one pool size fits every driver; SQLite files get their pragmas through
// the DSN.
func NewDB(driver, dsn string) (*sql.DB, error) {
	if IsSQLite(driver) {
		dsn = sqliteDSN(driver, dsn)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// Migrate applies pending migrations and logs each one applied.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	dialect := goose.DialectSQLite3
	if driver == "mysql" {
		dialect = goose.DialectMySQL
	}
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	for _, r := range results {
		slog.Debug("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
