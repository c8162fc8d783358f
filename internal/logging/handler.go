// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the event log table.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
)

// Metadata keys added to every stored event that happened inside a span.
const (
	traceIDKey = "trace_id"
	spanIDKey  = "span_id"
)

// EventWriter persists event log entries.
type EventWriter interface {
	CreateEvent(ctx context.Context, arg store.CreateEventParams) (string, error)
}

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its level to the event log.
type EventLogHandler struct {
	inner  slog.Handler
	events EventWriter
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
}

// Option configures an EventLogHandler.
type Option func(*EventLogHandler)

// WithMinLevel sets the lowest level stored in the event log. The default
// is slog.LevelWarn.
func WithMinLevel(l slog.Leveler) Option {
	return func(h *EventLogHandler) { h.level = l }
}

// NewEventLogHandler wraps inner and forwards records at or above the
// minimum level to events.
func NewEventLogHandler(inner slog.Handler, events EventWriter, opts ...Option) *EventLogHandler {
	h := &EventLogHandler{inner: inner, events: events, level: slog.LevelWarn}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if h.events != nil && r.Level >= h.level.Level() {
		h.store(ctx, r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), prefixed(h.group, attrs)...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	clone.group = joinKey(h.group, name)
	return &clone
}

// store writes r to the event log. The request context may already be
// cancelled, so the write uses a fresh one. Failures are dropped: logging
// them would recurse into this handler.
func (h *EventLogHandler) store(ctx context.Context, r slog.Record) {
	fields := make(map[string]string, len(h.attrs)+r.NumAttrs()+2)
	category := ""
	collect := func(a slog.Attr) {
		if a.Key == "category" {
			category = a.Value.String()
			return
		}
		fields[a.Key] = a.Value.String()
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		for _, fa := range prefixed(h.group, []slog.Attr{a}) {
			collect(fa)
		}
		return true
	})

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields[traceIDKey] = sc.TraceID().String()
		fields[spanIDKey] = sc.SpanID().String()
	}
	if category == "" {
		category = inferCategory(r.Message)
	}

	metadata := "{}"
	if len(fields) > 0 {
		if raw, err := json.Marshal(fields); err == nil {
			metadata = string(raw)
		}
	}

	_, _ = h.events.CreateEvent(context.WithoutCancel(ctx), store.CreateEventParams{
		Level:     model.EventLevel(r.Level),
		Category:  category,
		Message:   r.Message,
		Metadata:  metadata,
		CreatedAt: r.Time,
	})
}

// prefixed resolves attrs and flattens group values into dotted keys under
// group. The category key is never prefixed so a grouped logger can still
// set it.
func prefixed(group string, attrs []slog.Attr) []slog.Attr {
	var out []slog.Attr
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Value.Kind() == slog.KindGroup {
			out = append(out, prefixed(joinKey(group, a.Key), a.Value.Group())...)
			continue
		}
		if a.Key == "" {
			continue
		}
		if a.Key != "category" {
			a.Key = joinKey(group, a.Key)
		}
		out = append(out, a)
	}
	return out
}

func joinKey(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	default:
		return group + "." + key
	}
}

// categoryHints maps message keywords to event categories, checked in order.
var categoryHints = []struct {
	category string
	words    []string
}{
	{model.EventCategoryContent, []string{"content", "collection", "section"}},
	{model.EventCategoryCache, []string{"cache"}},
	{model.EventCategoryMedia, []string{"media", "image"}},
	{model.EventCategoryHTTP, []string{"request", "rate limit", "render"}},
}

// inferCategory guesses a category from the message when none was attached.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	for _, hint := range categoryHints {
		for _, w := range hint.words {
			if strings.Contains(msg, w) {
				return hint.category
			}
		}
	}
	return model.EventCategorySystem
}
