// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content reads record collections from a content backend.
//
// Every backend implements Source. Decorators add caching (Cached) and
// tracing (Traced) without changing the interface, so handlers and the page
// loader never know which backend serves them.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/mirror-creative/internal/model"
)

// ErrUnknownCollection is returned when a collection name is not recognised.
var ErrUnknownCollection = errors.New("unknown collection")

// ListOptions narrows a collection read.
type ListOptions struct {
	// Limit caps the number of records returned. Zero or negative means no limit.
	Limit int
}

// Source is a read-only content backend. Records come back in the
// collection's natural order.
type Source interface {
	CoreValues(ctx context.Context, opts ListOptions) ([]model.CoreValue, error)
	CreativeSubjects(ctx context.Context, opts ListOptions) ([]model.CreativeSubject, error)
	GalleryItems(ctx context.Context, opts ListOptions) ([]model.GalleryItem, error)
	PerformanceServices(ctx context.Context, opts ListOptions) ([]model.PerformanceService, error)
	StudentTestimonials(ctx context.Context, opts ListOptions) ([]model.StudentTestimonial, error)
	SubjectStyles(ctx context.Context, opts ListOptions) ([]model.SubjectStyle, error)
	Teachers(ctx context.Context, opts ListOptions) ([]model.Teacher, error)
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Result is one collection read addressed by name.
type Result struct {
	Collection model.Collection `json:"collection"`
	Items      any              `json:"items"`
	Count      int              `json:"count"`
}

// GetAll reads the named collection from src.
func GetAll(ctx context.Context, src Source, c model.Collection, opts ListOptions) (Result, error) {
	var (
		items any
		count int
		err   error
	)

	switch c {
	case model.CollectionCoreValues:
		items, count, err = wrap(src.CoreValues(ctx, opts))
	case model.CollectionCreativeSubjects:
		items, count, err = wrap(src.CreativeSubjects(ctx, opts))
	case model.CollectionGalleryItems:
		items, count, err = wrap(src.GalleryItems(ctx, opts))
	case model.CollectionPerformanceServices:
		items, count, err = wrap(src.PerformanceServices(ctx, opts))
	case model.CollectionStudentTestimonials:
		items, count, err = wrap(src.StudentTestimonials(ctx, opts))
	case model.CollectionSubjectStyles:
		items, count, err = wrap(src.SubjectStyles(ctx, opts))
	case model.CollectionTeachers:
		items, count, err = wrap(src.Teachers(ctx, opts))
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{Collection: c, Items: items, Count: count}, nil
}

func wrap[T any](items []T, err error) (any, int, error) {
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, len(items), nil
}

// limit truncates items to opts.Limit when a backend cannot apply it itself.
func limit[T any](items []T, opts ListOptions) []T {
	if opts.Limit > 0 && len(items) > opts.Limit {
		return items[:opts.Limit]
	}
	return items
}
