// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package gallery

import "github.com/olegiv/mirror-creative/internal/model"

// Browser is the state of the gallery page: the loaded items, the active
// filter and the lightbox over the filtered list.
type Browser struct {
	items    []model.GalleryItem
	filter   string
	filtered []model.GalleryItem
	lightbox *Lightbox
}

// NewBrowser starts on FilterAll with the lightbox closed.
func NewBrowser(items []model.GalleryItem) *Browser {
	b := &Browser{items: items}
	b.SetFilter(FilterAll)
	return b
}

// SetFilter switches the active filter and closes the lightbox, since an
// open index refers to the previous filtered list.
func (b *Browser) SetFilter(label string) {
	b.filter = NormalizeFilter(label)
	b.filtered = ApplyFilter(b.items, b.filter)
	b.lightbox = NewLightbox(len(b.filtered))
}

// Filter returns the active filter label.
func (b *Browser) Filter() string { return b.filter }

// Items returns the filtered list.
func (b *Browser) Items() []model.GalleryItem { return b.filtered }

// Lightbox returns the lightbox over the filtered list.
func (b *Browser) Lightbox() *Lightbox { return b.lightbox }

// Selected returns the item open in the lightbox.
func (b *Browser) Selected() (model.GalleryItem, bool) {
	i, ok := b.lightbox.Current()
	if !ok {
		return model.GalleryItem{}, false
	}
	return b.filtered[i], true
}
