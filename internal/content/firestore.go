// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
)

const batchSize = 250 // Stay well under Firestore's 500 operation limit

// FirestoreSource serves content from Google Cloud Firestore. Each content
// collection maps to a Firestore collection of the same name; document IDs
// become record IDs and documents are returned in document ID order.
type FirestoreSource struct {
	client *firestore.Client
}

// NewFirestoreSource connects to Firestore in the given project.
func NewFirestoreSource(ctx context.Context, projectID string) (*FirestoreSource, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &FirestoreSource{client: client}, nil
}

// Close closes the Firestore client.
func (s *FirestoreSource) Close() error {
	return s.client.Close()
}

// Ping reads a single document to verify connectivity and credentials.
func (s *FirestoreSource) Ping(ctx context.Context) error {
	iter := s.client.Collection(string(model.CollectionCoreValues)).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

// list decodes every document of collection c into T.
func list[T any](ctx context.Context, client *firestore.Client, c model.Collection, opts ListOptions, setID func(*T, string)) ([]T, error) {
	query := client.Collection(string(c)).Query
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	items := []T{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating %s: %w", c, err)
		}

		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("decoding %s/%s: %w", c, doc.Ref.ID, err)
		}
		setID(&item, doc.Ref.ID)
		items = append(items, item)
	}
	return items, nil
}

func (s *FirestoreSource) CoreValues(ctx context.Context, opts ListOptions) ([]model.CoreValue, error) {
	return list(ctx, s.client, model.CollectionCoreValues, opts, func(v *model.CoreValue, id string) { v.ID = id })
}

func (s *FirestoreSource) CreativeSubjects(ctx context.Context, opts ListOptions) ([]model.CreativeSubject, error) {
	return list(ctx, s.client, model.CollectionCreativeSubjects, opts, func(v *model.CreativeSubject, id string) { v.ID = id })
}

func (s *FirestoreSource) GalleryItems(ctx context.Context, opts ListOptions) ([]model.GalleryItem, error) {
	return list(ctx, s.client, model.CollectionGalleryItems, opts, func(v *model.GalleryItem, id string) { v.ID = id })
}

func (s *FirestoreSource) PerformanceServices(ctx context.Context, opts ListOptions) ([]model.PerformanceService, error) {
	return list(ctx, s.client, model.CollectionPerformanceServices, opts, func(v *model.PerformanceService, id string) { v.ID = id })
}

func (s *FirestoreSource) StudentTestimonials(ctx context.Context, opts ListOptions) ([]model.StudentTestimonial, error) {
	return list(ctx, s.client, model.CollectionStudentTestimonials, opts, func(v *model.StudentTestimonial, id string) { v.ID = id })
}

func (s *FirestoreSource) SubjectStyles(ctx context.Context, opts ListOptions) ([]model.SubjectStyle, error) {
	return list(ctx, s.client, model.CollectionSubjectStyles, opts, func(v *model.SubjectStyle, id string) { v.ID = id })
}

func (s *FirestoreSource) Teachers(ctx context.Context, opts ListOptions) ([]model.Teacher, error) {
	return list(ctx, s.client, model.CollectionTeachers, opts, func(v *model.Teacher, id string) { v.ID = id })
}

// Import writes seed records into Firestore, overwriting documents with the
// same ID. Records without an ID are skipped.
func (s *FirestoreSource) Import(ctx context.Context, sd *store.SeedData) (int, error) {
	var docs []importDoc
	docs = appendDocs(docs, model.CollectionCoreValues, sd.CoreValues, func(v model.CoreValue) string { return v.ID })
	docs = appendDocs(docs, model.CollectionCreativeSubjects, sd.CreativeSubjects, func(v model.CreativeSubject) string { return v.ID })
	docs = appendDocs(docs, model.CollectionGalleryItems, sd.GalleryItems, func(v model.GalleryItem) string { return v.ID })
	docs = appendDocs(docs, model.CollectionPerformanceServices, sd.PerformanceServices, func(v model.PerformanceService) string { return v.ID })
	docs = appendDocs(docs, model.CollectionStudentTestimonials, sd.StudentTestimonials, func(v model.StudentTestimonial) string { return v.ID })
	docs = appendDocs(docs, model.CollectionSubjectStyles, sd.SubjectStyles, func(v model.SubjectStyle) string { return v.ID })
	docs = appendDocs(docs, model.CollectionTeachers, sd.Teachers, func(v model.Teacher) string { return v.ID })

	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))
		batch := s.client.Batch()
		for _, d := range docs[i:end] {
			batch.Set(s.client.Collection(string(d.collection)).Doc(d.id), d.data)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return i, fmt.Errorf("committing batch: %w", err)
		}
	}
	return len(docs), nil
}

type importDoc struct {
	collection model.Collection
	id         string
	data       any
}

func appendDocs[T any](docs []importDoc, c model.Collection, items []T, id func(T) string) []importDoc {
	for _, item := range items {
		if docID := id(item); docID != "" {
			docs = append(docs, importDoc{collection: c, id: docID, data: item})
		}
	}
	return docs
}

var (
	_ Source = (*FirestoreSource)(nil)
	_ Pinger = (*FirestoreSource)(nil)
)
