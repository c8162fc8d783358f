// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
)

// ErrTooLarge is returned when an import document exceeds MaxImportSize.
var ErrTooLarge = errors.New("import document too large")

// Target receives imported records.
type Target interface {
	Import(ctx context.Context, sd *store.SeedData) (int, error)
}

// StoreTarget imports into the SQL store. Collections that already hold
// records are left untouched.
type StoreTarget struct {
	db *sql.DB
}

// NewStoreTarget creates a target writing to db.
func NewStoreTarget(db *sql.DB) *StoreTarget {
	return &StoreTarget{db: db}
}

// Import seeds every empty collection from sd and returns the number of
// records that were written.
func (t *StoreTarget) Import(ctx context.Context, sd *store.SeedData) (int, error) {
	queries := store.New(t.db)
	before, err := totalRecords(ctx, queries)
	if err != nil {
		return 0, err
	}
	if err := store.SeedWith(ctx, t.db, sd); err != nil {
		return 0, err
	}
	after, err := totalRecords(ctx, queries)
	if err != nil {
		return 0, err
	}
	return int(after - before), nil
}

func totalRecords(ctx context.Context, q *store.Queries) (int64, error) {
	var total int64
	for _, c := range model.Collections {
		n, err := q.CountRecords(ctx, c)
		if err != nil {
			return 0, fmt.Errorf("counting %s: %w", c, err)
		}
		total += n
	}
	return total, nil
}

// ImportError describes a record that fails validation.
type ImportError struct {
	Entity  string `json:"entity"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q: %s", e.Entity, e.ID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

// Importer validates export documents and writes them to a Target.
type Importer struct {
	target Target
	logger *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(target Target, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{target: target, logger: logger}
}

// Import validates data and writes it to the target.
func (i *Importer) Import(ctx context.Context, data *ExportData) (int, error) {
	if errs := Validate(data); len(errs) > 0 {
		return 0, fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	n, err := i.target.Import(ctx, &data.SeedData)
	if err != nil {
		return n, fmt.Errorf("importing content: %w", err)
	}
	i.logger.Info("content imported", "records", n, "version", data.Version)
	return n, nil
}

// ImportFromFile reads and imports the document at path.
func (i *Importer) ImportFromFile(ctx context.Context, path string) (int, error) {
	data, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	return i.Import(ctx, data)
}

// ReadFile reads an export document, choosing the format from the extension.
func ReadFile(path string) (*ExportData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f, FormatForPath(path))
}

// Decode reads an export document from r.
func Decode(r io.Reader, format Format) (*ExportData, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	if int64(len(raw)) > MaxImportSize {
		return nil, ErrTooLarge
	}

	var data ExportData
	if format == FormatYAML {
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return &data, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &data, nil
}

// Validate checks the document version and that record IDs are unique
// within each collection.
func Validate(data *ExportData) []error {
	var errs []error
	switch {
	case data.Version == "":
		errs = append(errs, ImportError{Entity: "document", Message: "missing version"})
	case majorVersion(data.Version) != majorVersion(ExportVersion):
		errs = append(errs, ImportError{Entity: "document",
			Message: fmt.Sprintf("unsupported version %q, expected %s.x", data.Version, majorVersion(ExportVersion))})
	}

	errs = append(errs, duplicateIDs("coreValues", data.CoreValues, func(i int) string { return data.CoreValues[i].ID })...)
	errs = append(errs, duplicateIDs("creativeSubjects", data.CreativeSubjects, func(i int) string { return data.CreativeSubjects[i].ID })...)
	errs = append(errs, duplicateIDs("galleryItems", data.GalleryItems, func(i int) string { return data.GalleryItems[i].ID })...)
	errs = append(errs, duplicateIDs("performanceServices", data.PerformanceServices, func(i int) string { return data.PerformanceServices[i].ID })...)
	errs = append(errs, duplicateIDs("studentTestimonials", data.StudentTestimonials, func(i int) string { return data.StudentTestimonials[i].ID })...)
	errs = append(errs, duplicateIDs("subjectStyles", data.SubjectStyles, func(i int) string { return data.SubjectStyles[i].ID })...)
	errs = append(errs, duplicateIDs("teachers", data.Teachers, func(i int) string { return data.Teachers[i].ID })...)
	return errs
}

func duplicateIDs[T any](entity string, items []T, id func(int) string) []error {
	var errs []error
	seen := make(map[string]bool, len(items))
	for i := range items {
		v := id(i)
		if v == "" {
			continue
		}
		if seen[v] {
			errs = append(errs, ImportError{Entity: entity, ID: v, Message: "duplicate id"})
		}
		seen[v] = true
	}
	return errs
}

func majorVersion(v string) string {
	major, _, _ := strings.Cut(v, ".")
	return major
}
