// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/olegiv/mirror-creative/internal/model"
)

const tracerName = "github.com/olegiv/mirror-creative/internal/content"

// Traced records a span for every collection read.
type Traced struct {
	next   Source
	tracer trace.Tracer
}

// NewTraced wraps next. A nil provider uses the global tracer provider.
func NewTraced(next Source, tp trace.TracerProvider) *Traced {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Traced{next: next, tracer: tp.Tracer(tracerName)}
}

func span[T any](ctx context.Context, t *Traced, c model.Collection, opts ListOptions, load func(context.Context, ListOptions) ([]T, error)) ([]T, error) {
	ctx, sp := t.tracer.Start(ctx, "content.list",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("content.collection", string(c)),
			attribute.Int("content.limit", opts.Limit),
		))
	defer sp.End()

	items, err := load(ctx, opts)
	if err != nil {
		sp.RecordError(err)
		sp.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	sp.SetAttributes(attribute.Int("content.count", len(items)))
	return items, nil
}

func (t *Traced) CoreValues(ctx context.Context, opts ListOptions) ([]model.CoreValue, error) {
	return span(ctx, t, model.CollectionCoreValues, opts, t.next.CoreValues)
}

func (t *Traced) CreativeSubjects(ctx context.Context, opts ListOptions) ([]model.CreativeSubject, error) {
	return span(ctx, t, model.CollectionCreativeSubjects, opts, t.next.CreativeSubjects)
}

func (t *Traced) GalleryItems(ctx context.Context, opts ListOptions) ([]model.GalleryItem, error) {
	return span(ctx, t, model.CollectionGalleryItems, opts, t.next.GalleryItems)
}

func (t *Traced) PerformanceServices(ctx context.Context, opts ListOptions) ([]model.PerformanceService, error) {
	return span(ctx, t, model.CollectionPerformanceServices, opts, t.next.PerformanceServices)
}

func (t *Traced) StudentTestimonials(ctx context.Context, opts ListOptions) ([]model.StudentTestimonial, error) {
	return span(ctx, t, model.CollectionStudentTestimonials, opts, t.next.StudentTestimonials)
}

func (t *Traced) SubjectStyles(ctx context.Context, opts ListOptions) ([]model.SubjectStyle, error) {
	return span(ctx, t, model.CollectionSubjectStyles, opts, t.next.SubjectStyles)
}

func (t *Traced) Teachers(ctx context.Context, opts ListOptions) ([]model.Teacher, error) {
	return span(ctx, t, model.CollectionTeachers, opts, t.next.Teachers)
}

// Ping forwards to the wrapped Source when it can report health.
func (t *Traced) Ping(ctx context.Context) error {
	if p, ok := t.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

var (
	_ Source = (*Traced)(nil)
	_ Pinger = (*Traced)(nil)
)
