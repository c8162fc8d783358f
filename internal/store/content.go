// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/mirror-creative/internal/model"
)

// tables maps each collection to its table name.
var tables = map[model.Collection]string{
	model.CollectionCoreValues:          "core_values",
	model.CollectionCreativeSubjects:    "creative_subjects",
	model.CollectionGalleryItems:        "gallery_items",
	model.CollectionPerformanceServices: "performance_services",
	model.CollectionStudentTestimonials: "student_testimonials",
	model.CollectionSubjectStyles:       "subject_styles",
	model.CollectionTeachers:            "teachers",
}

// TableName returns the table that holds the collection.
func TableName(c model.Collection) (string, bool) {
	t, ok := tables[c]
	return t, ok
}

// CountRecords returns the number of records in the collection.
func (q *Queries) CountRecords(ctx context.Context, c model.Collection) (int64, error) {
	table, ok := tables[c]
	if !ok {
		return 0, fmt.Errorf("unknown collection %q", c)
	}
	var n int64
	// table comes from the fixed map above, never from input
	if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

const orderBy = " ORDER BY sort_index, created_at, id"

const listCoreValues = `SELECT id, name, description, icon, display_order, is_active, created_at, updated_at
FROM core_values` + orderBy

// ListCoreValues returns core values in insertion order. limit <= 0 returns all.
func (q *Queries) ListCoreValues(ctx context.Context, limit int) ([]model.CoreValue, error) {
	rows, err := q.db.QueryContext(ctx, withLimit(listCoreValues, limit))
	if err != nil {
		return nil, fmt.Errorf("listing core values: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.CoreValue{}
	for rows.Next() {
		var (
			i                model.CoreValue
			desc, icon       sql.NullString
			created, updated string
		)
		if err := rows.Scan(&i.ID, &i.Name, &desc, &icon, &i.DisplayOrder, &i.IsActive, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning core value: %w", err)
		}
		i.Description, i.Icon = desc.String, icon.String
		i.CreatedAt, i.UpdatedAt = parseTime(created), parseTime(updated)
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertCoreValue = `INSERT INTO core_values
(id, sort_index, name, description, icon, display_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertCoreValue stores a core value at position sortIndex.
func (q *Queries) InsertCoreValue(ctx context.Context, sortIndex int, v model.CoreValue) error {
	_, err := q.db.ExecContext(ctx, insertCoreValue,
		v.ID, sortIndex, v.Name, optionalString(v.Description), optionalString(v.Icon),
		v.DisplayOrder, v.IsActive, formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting core value %s: %w", v.ID, err)
	}
	return nil
}

const listCreativeSubjects = `SELECT id, name, category, hero_image, famous_quote, description, learning_timeline, created_at, updated_at
FROM creative_subjects` + orderBy

// ListCreativeSubjects returns creative subjects in insertion order.
func (q *Queries) ListCreativeSubjects(ctx context.Context, limit int) ([]model.CreativeSubject, error) {
	rows, err := q.db.QueryContext(ctx, withLimit(listCreativeSubjects, limit))
	if err != nil {
		return nil, fmt.Errorf("listing creative subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.CreativeSubject{}
	for rows.Next() {
		var (
			i                           model.CreativeSubject
			hero, quote, desc, timeline sql.NullString
			created, updated            string
		)
		if err := rows.Scan(&i.ID, &i.Name, &i.Category, &hero, &quote, &desc, &timeline, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning creative subject: %w", err)
		}
		i.HeroImage, i.FamousQuote = hero.String, quote.String
		i.Description, i.LearningTimeline = desc.String, timeline.String
		i.CreatedAt, i.UpdatedAt = parseTime(created), parseTime(updated)
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertCreativeSubject = `INSERT INTO creative_subjects
(id, sort_index, name, category, hero_image, famous_quote, description, learning_timeline, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertCreativeSubject stores a creative subject at position sortIndex.
func (q *Queries) InsertCreativeSubject(ctx context.Context, sortIndex int, v model.CreativeSubject) error {
	_, err := q.db.ExecContext(ctx, insertCreativeSubject,
		v.ID, sortIndex, v.Name, v.Category, optionalString(v.HeroImage), optionalString(v.FamousQuote),
		optionalString(v.Description), optionalString(v.LearningTimeline),
		formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting creative subject %s: %w", v.ID, err)
	}
	return nil
}

const listGalleryItems = `SELECT id, title, image, category, description, date_taken, created_at, updated_at
FROM gallery_items` + orderBy

// ListGalleryItems returns gallery items in insertion order.
func (q *Queries) ListGalleryItems(ctx context.Context, limit int) ([]model.GalleryItem, error) {
	rows, err := q.db.QueryContext(ctx, withLimit(listGalleryItems, limit))
	if err != nil {
		return nil, fmt.Errorf("listing gallery items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.GalleryItem{}
	for rows.Next() {
		var (
			i                  model.GalleryItem
			image, desc, taken sql.NullString
			created, updated   string
		)
		if err := rows.Scan(&i.ID, &i.Title, &image, &i.Category, &desc, &taken, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning gallery item: %w", err)
		}
		i.Image, i.Description = image.String, desc.String
		i.DateTaken = nullTime(taken)
		i.CreatedAt, i.UpdatedAt = parseTime(created), parseTime(updated)
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertGalleryItem = `INSERT INTO gallery_items
(id, sort_index, title, image, category, description, date_taken, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertGalleryItem stores a gallery item at position sortIndex.
func (q *Queries) InsertGalleryItem(ctx context.Context, sortIndex int, v model.GalleryItem) error {
	_, err := q.db.ExecContext(ctx, insertGalleryItem,
		v.ID, sortIndex, v.Title, optionalString(v.Image), v.Category, optionalString(v.Description),
		optionalTime(v.DateTaken), formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting gallery item %s: %w", v.ID, err)
	}
	return nil
}

const listPerformanceServices = `SELECT id, name, short_description, description, promotional_image, booking_form_url, created_at, updated_at
FROM performance_services` + orderBy

// ListPerformanceServices returns performance services in insertion order.
func (q *Queries) ListPerformanceServices(ctx context.Context, limit int) ([]model.PerformanceService, error) {
	rows, err := q.db.QueryContext(ctx, withLimit(listPerformanceServices, limit))
	if err != nil {
		return nil, fmt.Errorf("listing performance services: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.PerformanceService{}
	for rows.Next() {
		var (
			i                              model.PerformanceService
			short, desc, image, bookingURL sql.NullString
			created, updated               string
		)
		if err := rows.Scan(&i.ID, &i.Name, &short, &desc, &image, &bookingURL, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning performance service: %w", err)
		}
		i.ShortDescription, i.Description = short.String, desc.String
		i.PromotionalImage, i.BookingFormURL = image.String, bookingURL.String
		i.CreatedAt, i.UpdatedAt = parseTime(created), parseTime(updated)
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertPerformanceService = `INSERT INTO performance_services
(id, sort_index, name, short_description, description, promotional_image, booking_form_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertPerformanceService stores a performance service at position sortIndex.
func (q *Queries) InsertPerformanceService(ctx context.Context, sortIndex int, v model.PerformanceService) error {
	_, err := q.db.ExecContext(ctx, insertPerformanceService,
		v.ID, sortIndex, v.Name, optionalString(v.ShortDescription), optionalString(v.Description),
		optionalString(v.PromotionalImage), optionalString(v.BookingFormURL),
		formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting performance service %s: %w", v.ID, err)
	}
	return nil
}

const listStudentTestimonials = `SELECT id, name, photo, course, body, is_featured, created_at, updated_at
FROM student_testimonials` + orderBy

// ListStudentTestimonials returns testimonials in insertion order.
func (q *Queries) ListStudentTestimonials(ctx context.Context, limit int) ([]model.StudentTestimonial, error) {
	rows, err := q.db.QueryContext(ctx, withLimit(listStudentTestimonials, limit))
	if err != nil {
		return nil, fmt.Errorf("listing student testimonials: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.StudentTestimonial{}
	for rows.Next() {
		var (
			i                   model.StudentTestimonial
			photo, course, body sql.NullString
			created, updated    string
		)
		if err := rows.Scan(&i.ID, &i.Name, &photo, &course, &body, &i.IsFeatured, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning student testimonial: %w", err)
		}
		i.Photo, i.Course, i.Text = photo.String, course.String, body.String
		i.CreatedAt, i.UpdatedAt = parseTime(created), parseTime(updated)
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertStudentTestimonial = `INSERT INTO student_testimonials
(id, sort_index, name, photo, course, body, is_featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertStudentTestimonial stores a testimonial at position sortIndex.
func (q *Queries) InsertStudentTestimonial(ctx context.Context, sortIndex int, v model.StudentTestimonial) error {
	_, err := q.db.ExecContext(ctx, insertStudentTestimonial,
		v.ID, sortIndex, v.Name, optionalString(v.Photo), optionalString(v.Course), optionalString(v.Text),
		v.IsFeatured, formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting student testimonial %s: %w", v.ID, err)
	}
	return nil
}

const listSubjectStyles = `SELECT id, name, short_summary, image, description, enrollment_form_url, created_at, updated_at
FROM subject_styles` + orderBy

// ListSubjectStyles returns subject styles in insertion order.
func (q *Queries) ListSubjectStyles(ctx context.Context, limit int) ([]model.SubjectStyle, error) {
	rows, err := q.db.QueryContext(ctx, withLimit(listSubjectStyles, limit))
	if err != nil {
		return nil, fmt.Errorf("listing subject styles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.SubjectStyle{}
	for rows.Next() {
		var (
			i                               model.SubjectStyle
			summary, image, desc, enrollURL sql.NullString
			created, updated                string
		)
		if err := rows.Scan(&i.ID, &i.Name, &summary, &image, &desc, &enrollURL, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning subject style: %w", err)
		}
		i.ShortSummary, i.Image = summary.String, image.String
		i.Description, i.EnrollmentFormURL = desc.String, enrollURL.String
		i.CreatedAt, i.UpdatedAt = parseTime(created), parseTime(updated)
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertSubjectStyle = `INSERT INTO subject_styles
(id, sort_index, name, short_summary, image, description, enrollment_form_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertSubjectStyle stores a subject style at position sortIndex.
func (q *Queries) InsertSubjectStyle(ctx context.Context, sortIndex int, v model.SubjectStyle) error {
	_, err := q.db.ExecContext(ctx, insertSubjectStyle,
		v.ID, sortIndex, v.Name, optionalString(v.ShortSummary), optionalString(v.Image),
		optionalString(v.Description), optionalString(v.EnrollmentFormURL),
		formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting subject style %s: %w", v.ID, err)
	}
	return nil
}

const listTeachers = `SELECT id, name, photo, specialization, bio, achievements, created_at, updated_at
FROM teachers` + orderBy

// ListTeachers returns teachers in insertion order.
func (q *Queries) ListTeachers(ctx context.Context, limit int) ([]model.Teacher, error) {
	rows, err := q.db.QueryContext(ctx, withLimit(listTeachers, limit))
	if err != nil {
		return nil, fmt.Errorf("listing teachers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.Teacher{}
	for rows.Next() {
		var (
			i                                        model.Teacher
			photo, specialization, bio, achievements sql.NullString
			created, updated                         string
		)
		if err := rows.Scan(&i.ID, &i.Name, &photo, &specialization, &bio, &achievements, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning teacher: %w", err)
		}
		i.Photo, i.Specialization = photo.String, specialization.String
		i.Bio, i.Achievements = bio.String, achievements.String
		i.CreatedAt, i.UpdatedAt = parseTime(created), parseTime(updated)
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertTeacher = `INSERT INTO teachers
(id, sort_index, name, photo, specialization, bio, achievements, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertTeacher stores a teacher at position sortIndex.
func (q *Queries) InsertTeacher(ctx context.Context, sortIndex int, v model.Teacher) error {
	_, err := q.db.ExecContext(ctx, insertTeacher,
		v.ID, sortIndex, v.Name, optionalString(v.Photo), optionalString(v.Specialization),
		optionalString(v.Bio), optionalString(v.Achievements),
		formatTime(v.CreatedAt), formatTime(v.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting teacher %s: %w", v.ID, err)
	}
	return nil
}
