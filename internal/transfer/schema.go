// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer provides import/export of site content as JSON or YAML
// documents.
package transfer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
)

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// MaxImportSize caps the size of an import document in bytes.
var MaxImportSize int64 = 50 << 20

// ExportData represents the complete export structure. The content fields
// share the seed document layout, so an export can be used as a seed file.
type ExportData struct {
	Version        string     `json:"version" yaml:"version"`
	ExportedAt     time.Time  `json:"exported_at" yaml:"exportedAt"`
	Site           ExportSite `json:"site" yaml:"site"`
	store.SeedData `yaml:",inline"`
}

// ExportSite contains basic site information.
type ExportSite struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Format is the encoding of an export document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Counts returns the number of records per collection.
func (d *ExportData) Counts() map[model.Collection]int {
	return map[model.Collection]int{
		model.CollectionCoreValues:          len(d.CoreValues),
		model.CollectionCreativeSubjects:    len(d.CreativeSubjects),
		model.CollectionGalleryItems:        len(d.GalleryItems),
		model.CollectionPerformanceServices: len(d.PerformanceServices),
		model.CollectionStudentTestimonials: len(d.StudentTestimonials),
		model.CollectionSubjectStyles:       len(d.SubjectStyles),
		model.CollectionTeachers:            len(d.Teachers),
	}
}

// Total returns the number of records across every collection.
func (d *ExportData) Total() int {
	n := 0
	for _, c := range d.Counts() {
		n += c
	}
	return n
}
