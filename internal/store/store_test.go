// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/olegiv/mirror-creative/internal/model"
)

// testDB creates a migrated database in a temporary directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	return testDBWithDriver(t, "sqlite")
}

func testDBWithDriver(t *testing.T, driver string) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "mirror-test.db")
	db, err := NewDB(driver, dbPath)
	if err != nil {
		if strings.Contains(err.Error(), "CGO_ENABLED=0") {
			t.Skipf("%s driver needs cgo: %v", driver, err)
		}
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(context.Background(), db, driver); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestMigrate_BothSQLiteDrivers(t *testing.T) {
	for _, driver := range []string{"sqlite", "sqlite3"} {
		t.Run(driver, func(t *testing.T) {
			db := testDBWithDriver(t, driver)
			q := New(db)

			if err := q.Ping(context.Background()); err != nil {
				t.Fatalf("Ping: %v", err)
			}
			for _, c := range model.Collections {
				n, err := q.CountRecords(context.Background(), c)
				if err != nil {
					t.Fatalf("CountRecords(%s): %v", c, err)
				}
				if n != 0 {
					t.Errorf("CountRecords(%s) = %d, want 0", c, n)
				}
			}
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	got := sqliteDSN("sqlite", "data/mirror.db")
	if !strings.HasPrefix(got, "data/mirror.db?_pragma=") || !strings.Contains(got, "busy_timeout%285000%29") {
		t.Errorf("modernc DSN = %q", got)
	}

	got = sqliteDSN("sqlite3", "file:mirror.db?cache=shared")
	if !strings.HasPrefix(got, "file:mirror.db?cache=shared&") || !strings.Contains(got, "_busy_timeout=5000") {
		t.Errorf("mattn DSN = %q", got)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)
	if err := Migrate(context.Background(), db, "sqlite"); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestIsSQLite(t *testing.T) {
	tests := map[string]bool{"sqlite": true, "sqlite3": true, "mysql": false, "": false}
	for driver, want := range tests {
		if got := IsSQLite(driver); got != want {
			t.Errorf("IsSQLite(%q) = %v, want %v", driver, got, want)
		}
	}
}

func TestCoreValues_InsertAndList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	values := []model.CoreValue{
		{Record: model.Record{ID: "b", CreatedAt: created, UpdatedAt: created}, Name: "Second", DisplayOrder: 2, IsActive: true},
		{Record: model.Record{ID: "a", CreatedAt: created, UpdatedAt: created}, Name: "First", Description: "desc", Icon: "star", DisplayOrder: 1},
	}
	for i, v := range values {
		if err := q.InsertCoreValue(ctx, i, v); err != nil {
			t.Fatalf("InsertCoreValue: %v", err)
		}
	}

	got, err := q.ListCoreValues(ctx, 0)
	if err != nil {
		t.Fatalf("ListCoreValues: %v", err)
	}
	if diff := cmp.Diff(values, got); diff != "" {
		t.Errorf("ListCoreValues mismatch (-want +got):\n%s", diff)
	}

	limited, err := q.ListCoreValues(ctx, 1)
	if err != nil {
		t.Fatalf("ListCoreValues(limit 1): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "b" {
		t.Errorf("ListCoreValues(limit 1) = %+v, want only record b", limited)
	}
}

func TestGalleryItems_DateTaken(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	taken := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC().Truncate(time.Microsecond)
	items := []model.GalleryItem{
		{Record: model.Record{ID: "with-date", CreatedAt: now, UpdatedAt: now}, Title: "Recital", Category: "Concerts", DateTaken: taken},
		{Record: model.Record{ID: "without-date", CreatedAt: now, UpdatedAt: now}, Title: "Class", Category: "Classes"},
	}
	for i, it := range items {
		if err := q.InsertGalleryItem(ctx, i, it); err != nil {
			t.Fatalf("InsertGalleryItem: %v", err)
		}
	}

	got, err := q.ListGalleryItems(ctx, 0)
	if err != nil {
		t.Fatalf("ListGalleryItems: %v", err)
	}
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("ListGalleryItems mismatch (-want +got):\n%s", diff)
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	teacher := model.Teacher{Record: model.Record{ID: "t1"}, Name: "One"}
	if err := q.InsertTeacher(ctx, 0, teacher); err != nil {
		t.Fatalf("InsertTeacher: %v", err)
	}
	if err := q.InsertTeacher(ctx, 1, teacher); err == nil {
		t.Error("second InsertTeacher with the same id succeeded, want error")
	}
}

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	sd, err := ParseSeed(seedContent)
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}

	teachers, err := q.ListTeachers(ctx, 0)
	if err != nil {
		t.Fatalf("ListTeachers: %v", err)
	}
	if len(teachers) != len(sd.Teachers) {
		t.Fatalf("len(teachers) = %d, want %d", len(teachers), len(sd.Teachers))
	}
	for i := range teachers {
		if teachers[i].ID != sd.Teachers[i].ID {
			t.Errorf("teachers[%d].ID = %q, want %q (file order)", i, teachers[i].ID, sd.Teachers[i].ID)
		}
		if teachers[i].CreatedAt.IsZero() {
			t.Errorf("teachers[%d].CreatedAt is zero", i)
		}
	}

	gallery, err := q.ListGalleryItems(ctx, 0)
	if err != nil {
		t.Fatalf("ListGalleryItems: %v", err)
	}
	if len(gallery) == 0 || gallery[0].DateTaken.IsZero() {
		t.Errorf("gallery[0].DateTaken not decoded from seed file: %+v", gallery)
	}

	// Seeding again leaves existing collections alone.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	n, err := q.CountRecords(ctx, model.CollectionTeachers)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if n != int64(len(sd.Teachers)) {
		t.Errorf("teachers after reseed = %d, want %d", n, len(sd.Teachers))
	}
}

func TestSeedWith_GeneratesMissingIDs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	sd := &SeedData{
		StudentTestimonials: []model.StudentTestimonial{{Name: "Anon", Text: "Great"}},
	}
	if err := SeedWith(ctx, db, sd); err != nil {
		t.Fatalf("SeedWith: %v", err)
	}

	got, err := New(db).ListStudentTestimonials(ctx, 0)
	if err != nil {
		t.Fatalf("ListStudentTestimonials: %v", err)
	}
	if len(got) != 1 || got[0].ID == "" {
		t.Errorf("ListStudentTestimonials = %+v, want one record with a generated id", got)
	}
}

func TestEvents(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	old := time.Now().Add(-48 * time.Hour)
	if _, err := q.CreateEvent(ctx, CreateEventParams{
		Level: model.EventLevelWarning, Category: model.EventCategoryContent,
		Message: "old", CreatedAt: old,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	id, err := q.CreateEvent(ctx, CreateEventParams{
		Level: model.EventLevelError, Category: model.EventCategoryHTTP,
		Message: "new", Metadata: `{"path":"/x"}`,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := q.ListEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].ID != id || events[0].Metadata != `{"path":"/x"}` {
		t.Errorf("events[0] = %+v, want newest event first", events[0])
	}

	removed, err := q.DeleteEventsBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteEventsBefore removed %d, want 1", removed)
	}
}

func TestTimeFormat_SortsChronologically(t *testing.T) {
	a := formatTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	b := formatTime(time.Date(2025, 1, 1, 0, 0, 0, 500000, time.UTC))
	c := formatTime(time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC))
	if !(a < b && b < c) {
		t.Errorf("formatted times do not sort: %q %q %q", a, b, c)
	}
	if got := parseTime("2025-01-01T10:00:00+02:00"); !got.Equal(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("parseTime(RFC 3339) = %v", got)
	}
}
