// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"slices"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
)

// MemorySource serves a fixed set of records held in memory: the embedded
// seed when MIRROR_CONTENT_BACKEND=memory, or fixtures in tests.
type MemorySource struct {
	data store.SeedData
}

// NewMemorySource returns a Source over a copy of sd.
func NewMemorySource(sd *store.SeedData) *MemorySource {
	if sd == nil {
		return &MemorySource{}
	}
	return &MemorySource{data: store.SeedData{
		CoreValues:          slices.Clone(sd.CoreValues),
		CreativeSubjects:    slices.Clone(sd.CreativeSubjects),
		GalleryItems:        slices.Clone(sd.GalleryItems),
		PerformanceServices: slices.Clone(sd.PerformanceServices),
		StudentTestimonials: slices.Clone(sd.StudentTestimonials),
		SubjectStyles:       slices.Clone(sd.SubjectStyles),
		Teachers:            slices.Clone(sd.Teachers),
	}}
}

func snapshot[T any](items []T, opts ListOptions) []T {
	out := slices.Clone(limit(items, opts))
	if out == nil {
		out = []T{}
	}
	return out
}

func (m *MemorySource) CoreValues(_ context.Context, opts ListOptions) ([]model.CoreValue, error) {
	return snapshot(m.data.CoreValues, opts), nil
}

func (m *MemorySource) CreativeSubjects(_ context.Context, opts ListOptions) ([]model.CreativeSubject, error) {
	return snapshot(m.data.CreativeSubjects, opts), nil
}

func (m *MemorySource) GalleryItems(_ context.Context, opts ListOptions) ([]model.GalleryItem, error) {
	return snapshot(m.data.GalleryItems, opts), nil
}

func (m *MemorySource) PerformanceServices(_ context.Context, opts ListOptions) ([]model.PerformanceService, error) {
	return snapshot(m.data.PerformanceServices, opts), nil
}

func (m *MemorySource) StudentTestimonials(_ context.Context, opts ListOptions) ([]model.StudentTestimonial, error) {
	return snapshot(m.data.StudentTestimonials, opts), nil
}

func (m *MemorySource) SubjectStyles(_ context.Context, opts ListOptions) ([]model.SubjectStyle, error) {
	return snapshot(m.data.SubjectStyles, opts), nil
}

func (m *MemorySource) Teachers(_ context.Context, opts ListOptions) ([]model.Teacher, error) {
	return snapshot(m.data.Teachers, opts), nil
}

var _ Source = (*MemorySource)(nil)
