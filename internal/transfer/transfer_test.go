// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
	"github.com/olegiv/mirror-creative/internal/testutil"
)

func fixture() *store.SeedData {
	return &store.SeedData{
		CoreValues:          []model.CoreValue{{Record: model.Record{ID: "v1"}, Name: "Creativity", DisplayOrder: 1, IsActive: true}},
		CreativeSubjects:    []model.CreativeSubject{{Record: model.Record{ID: "s1"}, Name: "Painting", Category: "art"}},
		GalleryItems:        []model.GalleryItem{{Record: model.Record{ID: "g1"}, Title: "One", Category: "Classes"}},
		PerformanceServices: []model.PerformanceService{{Record: model.Record{ID: "p1"}, Name: "Weddings"}},
		StudentTestimonials: []model.StudentTestimonial{{Record: model.Record{ID: "t1"}, Name: "Ana", IsFeatured: true}},
		SubjectStyles:       []model.SubjectStyle{{Record: model.Record{ID: "st1"}, Name: "Oil Painting"}},
		Teachers: []model.Teacher{
			{Record: model.Record{ID: "te1"}, Name: "Maya", Specialization: "Violin"},
			{Record: model.Record{ID: "te2"}, Name: "Ravi", Specialization: "Tabla"},
		},
	}
}

func testExporter(t *testing.T, src content.Source) *Exporter {
	e := NewExporter(src, ExportSite{Name: "Mirror Creative Institute", URL: "https://mirror.test"}, testutil.Logger(t))
	e.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestExport_ReadsEveryCollection(t *testing.T) {
	data, err := testExporter(t, content.NewMemorySource(fixture())).Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ExportVersion, data.Version)
	assert.Equal(t, "https://mirror.test", data.Site.URL)
	assert.Equal(t, 8, data.Total())
	for _, c := range model.Collections {
		assert.Positive(t, data.Counts()[c], c)
	}
}

type failingTeachers struct {
	content.Source
}

func (failingTeachers) Teachers(context.Context, content.ListOptions) ([]model.Teacher, error) {
	return nil, errors.New("backend down")
}

func TestExport_FailedCollectionFailsExport(t *testing.T) {
	_, err := testExporter(t, failingTeachers{content.NewMemorySource(fixture())}).Export(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teachers")
}

func TestExportToFile_FailureKeepsExistingBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o600))

	err := testExporter(t, failingTeachers{content.NewMemorySource(fixture())}).ExportToFile(context.Background(), path)
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestEncodeDecode(t *testing.T) {
	want, err := testExporter(t, content.NewMemorySource(fixture())).Export(context.Background())
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, want, format))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("decoded export mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version":"1.0","unknown":true}`), FormatJSON)
	assert.Error(t, err, "unknown fields are rejected")

	_, err = Decode(strings.NewReader("version: [1"), FormatYAML)
	assert.Error(t, err)

	defer func(n int64) { MaxImportSize = n }(MaxImportSize)
	MaxImportSize = 16
	_, err = Decode(strings.NewReader(`{"version":"1.0","site":{}}`), FormatJSON)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("backup.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("BACKUP.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("backup.json"))
	assert.Equal(t, FormatJSON, FormatForPath("backup"))
}

func TestValidate(t *testing.T) {
	data := &ExportData{Version: "2.0", SeedData: *fixture()}
	data.Teachers = append(data.Teachers, model.Teacher{Record: model.Record{ID: "te1"}})

	errs := Validate(data)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "unsupported version")
	assert.Equal(t, `teachers "te1": duplicate id`, errs[1].Error())

	assert.Empty(t, Validate(&ExportData{Version: "1.3", SeedData: *fixture()}))
	assert.Len(t, Validate(&ExportData{}), 1)
}

func TestImport_IntoStore(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	path := filepath.Join(t.TempDir(), "backup.yaml")

	require.NoError(t, testExporter(t, content.NewMemorySource(fixture())).ExportToFile(ctx, path))

	imp := NewImporter(NewStoreTarget(db), testutil.Logger(t))
	n, err := imp.ImportFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	teachers, err := store.New(db).ListTeachers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Maya", teachers[0].Name)

	// A second import leaves the populated collections alone.
	n, err = imp.ImportFromFile(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImport_RejectsInvalidDocument(t *testing.T) {
	db := testutil.DB(t)
	imp := NewImporter(NewStoreTarget(db), testutil.Logger(t))

	_, err := imp.Import(context.Background(), &ExportData{SeedData: *fixture()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing version")

	count, err := store.New(db).CountRecords(context.Background(), model.CollectionTeachers)
	require.NoError(t, err)
	assert.Zero(t, count)
}
