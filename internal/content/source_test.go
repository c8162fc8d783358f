// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
)

// fixture is a small data set covering every collection.
func fixture() *store.SeedData {
	return &store.SeedData{
		CoreValues: []model.CoreValue{
			{Record: model.Record{ID: "v1"}, Name: "Creativity", DisplayOrder: 2, IsActive: true},
			{Record: model.Record{ID: "v2"}, Name: "Discipline", DisplayOrder: 1, IsActive: false},
		},
		CreativeSubjects: []model.CreativeSubject{{Record: model.Record{ID: "s1"}, Name: "Painting", Category: "art"}},
		GalleryItems: []model.GalleryItem{
			{Record: model.Record{ID: "g1"}, Title: "One", Category: "Classes"},
			{Record: model.Record{ID: "g2"}, Title: "Two", Category: "Concerts"},
			{Record: model.Record{ID: "g3"}, Title: "Three", Category: "Classes"},
		},
		PerformanceServices: []model.PerformanceService{{Record: model.Record{ID: "p1"}, Name: "Weddings"}},
		StudentTestimonials: []model.StudentTestimonial{{Record: model.Record{ID: "t1"}, Name: "Ana"}},
		SubjectStyles:       []model.SubjectStyle{{Record: model.Record{ID: "st1"}, Name: "Oil Painting"}},
		Teachers:            []model.Teacher{{Record: model.Record{ID: "te1"}, Name: "HM Jewel"}},
	}
}

func TestGetAll_DispatchesEveryCollection(t *testing.T) {
	src := NewMemorySource(fixture())
	ctx := context.Background()

	want := map[model.Collection]int{
		model.CollectionCoreValues:          2,
		model.CollectionCreativeSubjects:    1,
		model.CollectionGalleryItems:        3,
		model.CollectionPerformanceServices: 1,
		model.CollectionStudentTestimonials: 1,
		model.CollectionSubjectStyles:       1,
		model.CollectionTeachers:            1,
	}
	for _, c := range model.Collections {
		res, err := GetAll(ctx, src, c, ListOptions{})
		require.NoError(t, err, c)
		assert.Equal(t, c, res.Collection)
		assert.Equal(t, want[c], res.Count, c)
	}
}

func TestGetAll_Limit(t *testing.T) {
	res, err := GetAll(context.Background(), NewMemorySource(fixture()), model.CollectionGalleryItems, ListOptions{Limit: 2})
	require.NoError(t, err)
	items := res.Items.([]model.GalleryItem)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "g1", items[0].ID)
	assert.Equal(t, "g2", items[1].ID)
}

func TestGetAll_UnknownCollection(t *testing.T) {
	_, err := GetAll(context.Background(), NewMemorySource(nil), model.Collection("members"), ListOptions{})
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestGetAll_EmptyCollectionIsEmptySlice(t *testing.T) {
	res, err := GetAll(context.Background(), NewMemorySource(nil), model.CollectionTeachers, ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 0, res.Count)
}

func TestMemorySource_ReturnsCopies(t *testing.T) {
	src := NewMemorySource(fixture())
	ctx := context.Background()

	first, _ := src.Teachers(ctx, ListOptions{})
	first[0].Name = "changed"

	second, _ := src.Teachers(ctx, ListOptions{})
	assert.Equal(t, "HM Jewel", second[0].Name)
}

func TestStoreSource_ReadsSeededDatabase(t *testing.T) {
	db, err := store.NewDB("sqlite", filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db, "sqlite"))
	require.NoError(t, store.SeedWith(context.Background(), db, fixture()))

	src := NewStoreSource(store.New(db))
	ctx := context.Background()

	require.NoError(t, src.Ping(ctx))

	items, err := src.GalleryItems(ctx, ListOptions{})
	require.NoError(t, err)
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids)

	values, err := src.CoreValues(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.True(t, values[0].IsActive)
}

// countingSource counts backend reads and can be made to fail.
type countingSource struct {
	*MemorySource
	calls atomic.Int32
	err   error
}

func (c *countingSource) Teachers(ctx context.Context, opts ListOptions) ([]model.Teacher, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.MemorySource.Teachers(ctx, opts)
}

func (c *countingSource) Ping(context.Context) error { return c.err }

var errBackend = errors.New("backend unavailable")
