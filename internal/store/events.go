// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/mirror-creative/internal/model"
)

// CreateEventParams holds the fields of a new event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

const createEvent = `INSERT INTO events (id, level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

// CreateEvent appends an entry to the event log and returns its id.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (string, error) {
	id := uuid.NewString()
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now()
	}
	_, err := q.db.ExecContext(ctx, createEvent,
		id, arg.Level, arg.Category, arg.Message, optionalString(arg.Metadata), formatTime(arg.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("creating event: %w", err)
	}
	return id, nil
}

const listEvents = `SELECT id, level, category, message, metadata, created_at
FROM events ORDER BY created_at DESC, id LIMIT ?`

// ListEvents returns the most recent events, newest first.
func (q *Queries) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := []model.Event{}
	for rows.Next() {
		var (
			e        model.Event
			metadata sql.NullString
			created  string
		)
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &metadata, &created); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Metadata = metadata.String
		e.CreatedAt = parseTime(created)
		events = append(events, e)
	}
	return events, rows.Err()
}

const deleteEventsBefore = `DELETE FROM events WHERE created_at < ?`

// DeleteEventsBefore removes events older than cutoff and reports how many were removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("deleting events: %w", err)
	}
	return res.RowsAffected()
}
