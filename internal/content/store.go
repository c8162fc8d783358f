// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
)

// StoreSource serves content from the SQL store.
type StoreSource struct {
	queries *store.Queries
}

// NewStoreSource creates a Source backed by the SQL store.
func NewStoreSource(queries *store.Queries) *StoreSource {
	return &StoreSource{queries: queries}
}

func (s *StoreSource) CoreValues(ctx context.Context, opts ListOptions) ([]model.CoreValue, error) {
	return s.queries.ListCoreValues(ctx, opts.Limit)
}

func (s *StoreSource) CreativeSubjects(ctx context.Context, opts ListOptions) ([]model.CreativeSubject, error) {
	return s.queries.ListCreativeSubjects(ctx, opts.Limit)
}

func (s *StoreSource) GalleryItems(ctx context.Context, opts ListOptions) ([]model.GalleryItem, error) {
	return s.queries.ListGalleryItems(ctx, opts.Limit)
}

func (s *StoreSource) PerformanceServices(ctx context.Context, opts ListOptions) ([]model.PerformanceService, error) {
	return s.queries.ListPerformanceServices(ctx, opts.Limit)
}

func (s *StoreSource) StudentTestimonials(ctx context.Context, opts ListOptions) ([]model.StudentTestimonial, error) {
	return s.queries.ListStudentTestimonials(ctx, opts.Limit)
}

func (s *StoreSource) SubjectStyles(ctx context.Context, opts ListOptions) ([]model.SubjectStyle, error) {
	return s.queries.ListSubjectStyles(ctx, opts.Limit)
}

func (s *StoreSource) Teachers(ctx context.Context, opts ListOptions) ([]model.Teacher, error) {
	return s.queries.ListTeachers(ctx, opts.Limit)
}

// Ping checks the database connection.
func (s *StoreSource) Ping(ctx context.Context) error {
	return s.queries.Ping(ctx)
}

var (
	_ Source = (*StoreSource)(nil)
	_ Pinger = (*StoreSource)(nil)
)
