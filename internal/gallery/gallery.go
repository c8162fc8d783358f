// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gallery filters gallery items by category and tracks the item open
// in the lightbox.
package gallery

import (
	"strings"

	"github.com/olegiv/mirror-creative/internal/model"
)

// FilterAll is the label that selects every item.
const FilterAll = "All"

// Filters are the category labels offered above the grid, in display order.
var Filters = []string{FilterAll, "Classes", "Concerts", "Students", "Events"}

// NormalizeFilter maps a requested label onto one of Filters, ignoring case.
// Unknown or empty labels select FilterAll.
func NormalizeFilter(label string) string {
	label = strings.TrimSpace(label)
	for _, f := range Filters {
		if strings.EqualFold(f, label) {
			return f
		}
	}
	return FilterAll
}

// ApplyFilter returns the items whose category equals label, ignoring case,
// in their original order. FilterAll returns items unchanged.
func ApplyFilter(items []model.GalleryItem, label string) []model.GalleryItem {
	if strings.EqualFold(label, FilterAll) {
		return items
	}
	out := make([]model.GalleryItem, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Category, label) {
			out = append(out, it)
		}
	}
	return out
}
