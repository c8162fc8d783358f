// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/model"
)

// Page section limits on the home page.
const (
	HomeTestimonialLimit = 6
	HomeTeacherLimit     = 4
	HomeGalleryLimit     = 9
)

// Section is one collection read feeding part of a page.
type Section struct {
	Collection model.Collection
	Limit      int
	fetch      func(ctx context.Context, opts content.ListOptions) error
}

// Fetch declares a section that reads collection c through list and stores
// the records in dst. dst is left untouched when the read fails.
func Fetch[T any](dst *[]T, c model.Collection, limit int, list func(context.Context, content.ListOptions) ([]T, error)) Section {
	return Section{
		Collection: c,
		Limit:      limit,
		fetch: func(ctx context.Context, opts content.ListOptions) error {
			items, err := list(ctx, opts)
			if err != nil {
				return err
			}
			*dst = items
			return nil
		},
	}
}

// load runs every section concurrently and waits for all of them. A failed
// section is logged and left empty; it never fails the page or cancels its
// siblings. The only error returned is the request context's, when it ended
// before loading finished, so the caller can skip rendering a stale page.
func (s *Site) load(ctx context.Context, sections ...Section) error {
	var g errgroup.Group
	for _, sec := range sections {
		g.Go(func() error {
			if err := sec.fetch(ctx, content.ListOptions{Limit: sec.Limit}); err != nil {
				s.logger.WarnContext(ctx, "content section failed to load",
					"collection", sec.Collection,
					"limit", sec.Limit,
					"error", err,
					"category", model.EventCategoryContent)
			}
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}
