// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/model"
)

// Exporter reads every collection of a content source into an ExportData.
type Exporter struct {
	src    content.Source
	site   ExportSite
	logger *slog.Logger
	now    func() time.Time
}

// NewExporter creates a new Exporter instance.
func NewExporter(src content.Source, site ExportSite, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{src: src, site: site, logger: logger, now: time.Now}
}

// Export reads every collection concurrently. Unlike page rendering, a
// failed collection fails the export: a partial backup is worse than none.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: e.now().UTC(),
		Site:       e.site,
	}

	g, ctx := errgroup.WithContext(ctx)
	all := content.ListOptions{}
	read := func(c model.Collection, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				return fmt.Errorf("exporting %s: %w", c, err)
			}
			return nil
		})
	}
	read(model.CollectionCoreValues, func() (err error) {
		data.CoreValues, err = e.src.CoreValues(ctx, all)
		return err
	})
	read(model.CollectionCreativeSubjects, func() (err error) {
		data.CreativeSubjects, err = e.src.CreativeSubjects(ctx, all)
		return err
	})
	read(model.CollectionGalleryItems, func() (err error) {
		data.GalleryItems, err = e.src.GalleryItems(ctx, all)
		return err
	})
	read(model.CollectionPerformanceServices, func() (err error) {
		data.PerformanceServices, err = e.src.PerformanceServices(ctx, all)
		return err
	})
	read(model.CollectionStudentTestimonials, func() (err error) {
		data.StudentTestimonials, err = e.src.StudentTestimonials(ctx, all)
		return err
	})
	read(model.CollectionSubjectStyles, func() (err error) {
		data.SubjectStyles, err = e.src.SubjectStyles(ctx, all)
		return err
	})
	read(model.CollectionTeachers, func() (err error) {
		data.Teachers, err = e.src.Teachers(ctx, all)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("content exported", "records", data.Total(), "category", model.EventCategoryContent)
	return data, nil
}

// ExportToWriter writes the export to w in the given format.
func (e *Exporter) ExportToWriter(ctx context.Context, w io.Writer, format Format) error {
	data, err := e.Export(ctx)
	if err != nil {
		return err
	}
	return Encode(w, data, format)
}

// ExportToFile writes the export to path, choosing the format from its
// extension. The file is written beside path and renamed into place, so an
// existing backup is never left half overwritten.
func (e *Exporter) ExportToFile(ctx context.Context, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = e.ExportToWriter(ctx, tmp, FormatForPath(path)); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Encode writes data to w in the given format.
func Encode(w io.Writer, data *ExportData, format Format) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
