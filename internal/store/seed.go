// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/olegiv/mirror-creative/internal/model"
)

//go:embed seed/content.yaml
var seedContent []byte

// SeedData is the document shape of a seed file.
type SeedData struct {
	CoreValues          []model.CoreValue          `json:"coreValues" yaml:"coreValues"`
	CreativeSubjects    []model.CreativeSubject    `json:"creativeSubjects" yaml:"creativeSubjects"`
	GalleryItems        []model.GalleryItem        `json:"galleryItems" yaml:"galleryItems"`
	PerformanceServices []model.PerformanceService `json:"performanceServices" yaml:"performanceServices"`
	StudentTestimonials []model.StudentTestimonial `json:"studentTestimonials" yaml:"studentTestimonials"`
	SubjectStyles       []model.SubjectStyle       `json:"subjectStyles" yaml:"subjectStyles"`
	Teachers            []model.Teacher            `json:"teachers" yaml:"teachers"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (*SeedData, error) {
	var sd SeedData
	if err := yaml.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	return &sd, nil
}

// DefaultSeed returns the embedded seed content.
func DefaultSeed() (*SeedData, error) {
	return ParseSeed(seedContent)
}

// Seed inserts the embedded content into every empty collection.
func Seed(ctx context.Context, db *sql.DB) error {
	sd, err := DefaultSeed()
	if err != nil {
		return err
	}
	return SeedWith(ctx, db, sd)
}

// SeedWith inserts sd into every empty collection. Collections that already
// hold records are left untouched. Each collection is seeded in its own
// transaction.
func SeedWith(ctx context.Context, db *sql.DB, sd *SeedData) error {
	now := time.Now()

	type seeder struct {
		collection model.Collection
		count      int
		insert     func(q *Queries) error
	}

	seeders := []seeder{
		{model.CollectionCoreValues, len(sd.CoreValues), func(q *Queries) error {
			for i, v := range sd.CoreValues {
				stamp(&v.Record, now)
				if err := q.InsertCoreValue(ctx, i, v); err != nil {
					return err
				}
			}
			return nil
		}},
		{model.CollectionCreativeSubjects, len(sd.CreativeSubjects), func(q *Queries) error {
			for i, v := range sd.CreativeSubjects {
				stamp(&v.Record, now)
				if err := q.InsertCreativeSubject(ctx, i, v); err != nil {
					return err
				}
			}
			return nil
		}},
		{model.CollectionGalleryItems, len(sd.GalleryItems), func(q *Queries) error {
			for i, v := range sd.GalleryItems {
				stamp(&v.Record, now)
				if err := q.InsertGalleryItem(ctx, i, v); err != nil {
					return err
				}
			}
			return nil
		}},
		{model.CollectionPerformanceServices, len(sd.PerformanceServices), func(q *Queries) error {
			for i, v := range sd.PerformanceServices {
				stamp(&v.Record, now)
				if err := q.InsertPerformanceService(ctx, i, v); err != nil {
					return err
				}
			}
			return nil
		}},
		{model.CollectionStudentTestimonials, len(sd.StudentTestimonials), func(q *Queries) error {
			for i, v := range sd.StudentTestimonials {
				stamp(&v.Record, now)
				if err := q.InsertStudentTestimonial(ctx, i, v); err != nil {
					return err
				}
			}
			return nil
		}},
		{model.CollectionSubjectStyles, len(sd.SubjectStyles), func(q *Queries) error {
			for i, v := range sd.SubjectStyles {
				stamp(&v.Record, now)
				if err := q.InsertSubjectStyle(ctx, i, v); err != nil {
					return err
				}
			}
			return nil
		}},
		{model.CollectionTeachers, len(sd.Teachers), func(q *Queries) error {
			for i, v := range sd.Teachers {
				stamp(&v.Record, now)
				if err := q.InsertTeacher(ctx, i, v); err != nil {
					return err
				}
			}
			return nil
		}},
	}

	queries := New(db)
	for _, s := range seeders {
		if s.count == 0 {
			continue
		}

		n, err := queries.CountRecords(ctx, s.collection)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Debug("collection already has records, skipping seed", "collection", s.collection, "count", n)
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning seed transaction: %w", err)
		}
		if err := s.insert(queries.WithTx(tx)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seeding %s: %w", s.collection, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing %s seed: %w", s.collection, err)
		}

		slog.Info("seeded collection", "collection", s.collection, "records", s.count)
	}

	return nil
}

// stamp fills the id and timestamps a seed record leaves out.
func stamp(r *model.Record, now time.Time) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
}
