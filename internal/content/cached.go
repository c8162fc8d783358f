// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olegiv/mirror-creative/internal/cache"
	"github.com/olegiv/mirror-creative/internal/model"
)

// keyPrefix namespaces content entries in a cache shared with other data.
const keyPrefix = "content:"

// Cached serves reads from a cache and falls through to the wrapped Source on
// a miss. Backend errors are never cached.
type Cached struct {
	next   Source
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
	flight singleflight.Group
}

// NewCached wraps next with a cache. ttl of zero uses the cache default.
func NewCached(next Source, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{next: next, cache: c, ttl: ttl, logger: logger}
}

// Key returns the cache key for a collection read.
func Key(c model.Collection, opts ListOptions) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, c, max(opts.Limit, 0))
}

func read[T any](ctx context.Context, c *Cached, coll model.Collection, opts ListOptions, load func(context.Context, ListOptions) ([]T, error)) ([]T, error) {
	items, err := cache.Fetch(ctx, c.cache, &c.flight, Key(coll, opts), c.ttl, func(ctx context.Context) ([]T, error) {
		return load(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

func (c *Cached) CoreValues(ctx context.Context, opts ListOptions) ([]model.CoreValue, error) {
	return read(ctx, c, model.CollectionCoreValues, opts, c.next.CoreValues)
}

func (c *Cached) CreativeSubjects(ctx context.Context, opts ListOptions) ([]model.CreativeSubject, error) {
	return read(ctx, c, model.CollectionCreativeSubjects, opts, c.next.CreativeSubjects)
}

func (c *Cached) GalleryItems(ctx context.Context, opts ListOptions) ([]model.GalleryItem, error) {
	return read(ctx, c, model.CollectionGalleryItems, opts, c.next.GalleryItems)
}

func (c *Cached) PerformanceServices(ctx context.Context, opts ListOptions) ([]model.PerformanceService, error) {
	return read(ctx, c, model.CollectionPerformanceServices, opts, c.next.PerformanceServices)
}

func (c *Cached) StudentTestimonials(ctx context.Context, opts ListOptions) ([]model.StudentTestimonial, error) {
	return read(ctx, c, model.CollectionStudentTestimonials, opts, c.next.StudentTestimonials)
}

func (c *Cached) SubjectStyles(ctx context.Context, opts ListOptions) ([]model.SubjectStyle, error) {
	return read(ctx, c, model.CollectionSubjectStyles, opts, c.next.SubjectStyles)
}

func (c *Cached) Teachers(ctx context.Context, opts ListOptions) ([]model.Teacher, error) {
	return read(ctx, c, model.CollectionTeachers, opts, c.next.Teachers)
}

// Ping forwards to the wrapped Source when it can report health.
func (c *Cached) Ping(ctx context.Context) error {
	if p, ok := c.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Invalidate drops every cached content read.
func (c *Cached) Invalidate(ctx context.Context) error {
	return c.cache.DeleteByPrefix(ctx, keyPrefix)
}

// WarmRead names a collection read to refresh ahead of requests.
type WarmRead struct {
	Collection model.Collection
	Options    ListOptions
}

// Warm reloads each read from the backend and replaces the cached entry.
// A failing read is logged and skipped; the count of refreshed reads is
// returned.
func (c *Cached) Warm(ctx context.Context, reads []WarmRead) int {
	refreshed := 0
	for _, r := range reads {
		res, err := GetAll(ctx, c.next, r.Collection, r.Options)
		if err != nil {
			c.logger.Warn("cache warm failed", "collection", r.Collection, "limit", r.Options.Limit,
				"error", err, "category", model.EventCategoryCache)
			continue
		}
		if err := cache.SetJSON(ctx, c.cache, Key(r.Collection, r.Options), res.Items, c.ttl); err != nil {
			c.logger.Warn("cache warm store failed", "collection", r.Collection,
				"error", err, "category", model.EventCategoryCache)
			continue
		}
		refreshed++
	}
	return refreshed
}

var (
	_ Source = (*Cached)(nil)
	_ Pinger = (*Cached)(nil)
)
