// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"
)

// Levels stored with events.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Categories group events by the subsystem that logged them. Log calls
// attach one with a "category" attribute.
const (
	EventCategoryContent = "content"
	EventCategoryCache   = "cache"
	EventCategoryMedia   = "media"
	EventCategoryHTTP    = "http"
	EventCategorySystem  = "system"
)

// Event is a warning or error mirrored from the log into the events table.
type Event struct {
	ID        string
	Level     string
	Category  string
	Message   string
	Metadata  string // JSON object of string fields, may be empty
	CreatedAt time.Time
}

// EventLevel maps a slog level onto the stored event level.
func EventLevel(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return EventLevelError
	case l >= slog.LevelWarn:
		return EventLevelWarning
	default:
		return EventLevelInfo
	}
}

// Fields decodes Metadata. Empty or malformed metadata yields nil.
func (e Event) Fields() map[string]string {
	if e.Metadata == "" {
		return nil
	}
	var fields map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &fields); err != nil {
		return nil
	}
	return fields
}

// FieldString renders Fields as space separated key=value pairs in key
// order, for terminal output.
func (e Event) FieldString() string {
	fields := e.Fields()
	pairs := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		pairs = append(pairs, k+"="+fields[k])
	}
	return strings.Join(pairs, " ")
}
