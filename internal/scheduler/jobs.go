// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"time"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/model"
)

// Warmer refreshes cached content reads.
type Warmer interface {
	Warm(ctx context.Context, reads []content.WarmRead) int
}

// CacheWarmJob refreshes reads in the content cache so that page requests
// rarely hit the backend.
func CacheWarmJob(schedule string, w Warmer, reads []content.WarmRead) Job {
	return Job{
		Name:        "cache-warm",
		Description: "Refresh cached content collections",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			w.Warm(ctx, reads)
			return nil
		},
	}
}

// EventPruner deletes old event log entries.
type EventPruner interface {
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventPruneJob deletes event log entries older than retention once a day.
func EventPruneJob(p EventPruner, retention time.Duration) Job {
	return Job{
		Name:        "event-prune",
		Description: "Delete event log entries older than the retention period",
		Schedule:    "30 3 * * *",
		Run: func(ctx context.Context) error {
			_, err := p.DeleteEventsBefore(ctx, time.Now().Add(-retention))
			return err
		},
	}
}

// DefaultWarmReads covers every collection in full plus the limited reads
// the home page makes.
func DefaultWarmReads() []content.WarmRead {
	reads := make([]content.WarmRead, 0, len(model.Collections)+3)
	for _, c := range model.Collections {
		reads = append(reads, content.WarmRead{Collection: c})
	}
	return append(reads,
		content.WarmRead{Collection: model.CollectionStudentTestimonials, Options: content.ListOptions{Limit: 6}},
		content.WarmRead{Collection: model.CollectionTeachers, Options: content.ListOptions{Limit: 4}},
		content.WarmRead{Collection: model.CollectionGalleryItems, Options: content.ListOptions{Limit: 9}},
	)
}
