// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/mirror-creative/internal/store"
)

// testDriver is the pure Go SQLite driver, so tests need no cgo.
const testDriver = "sqlite"

// Logger returns a logger that writes errors to the test output, where they
// show up only for failing or verbose runs.
func Logger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(t.Output(), &slog.HandlerOptions{Level: slog.LevelError}))
}

// DB opens a migrated SQLite database in a temporary directory and closes
// it when the test ends.
func DB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(testDriver, filepath.Join(t.TempDir(), "mirror-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(context.Background(), db, testDriver); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
