// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"context"
	"net/url"
	"strconv"

	"github.com/olegiv/mirror-creative/internal/gallery"
	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/nav"
)

// EmptyGalleryMessage is shown when a filter matches nothing.
const EmptyGalleryMessage = "No items found in this category"

// GalleryURL returns the gallery address for filter with item open in the
// lightbox. item < 0 leaves the lightbox closed.
func GalleryURL(filter string, item int) string {
	q := url.Values{}
	if filter != "" && filter != gallery.FilterAll {
		q.Set("filter", filter)
	}
	if item >= 0 {
		q.Set("item", strconv.Itoa(item))
	}
	if len(q) == 0 {
		return nav.PathGallery
	}
	return nav.PathGallery + "?" + q.Encode()
}

// FilterTab is one filter button above the grid.
type FilterTab struct {
	Label  string
	URL    string
	Active bool
}

// GalleryCard is one grid tile.
type GalleryCard struct {
	model.GalleryItem
	Index int
	URL   string
}

// LightboxView is the open lightbox.
type LightboxView struct {
	Item     model.GalleryItem
	Position int // 1-based
	Total    int
	PrevURL  string
	NextURL  string
	CloseURL string
}

// GalleryData is the view model of the gallery page.
type GalleryData struct {
	Base
	Filter       string
	Filters      []FilterTab
	Cards        []GalleryCard
	EmptyMessage string
	Lightbox     *LightboxView
}

// Gallery builds the gallery page filtered by filter with item open in the
// lightbox. Unknown filters select All; an item outside the filtered list
// leaves the lightbox closed.
func (s *Site) Gallery(ctx context.Context, filter string, item int) (*GalleryData, error) {
	var items []model.GalleryItem
	if err := s.load(ctx, Fetch(&items, model.CollectionGalleryItems, 0, s.src.GalleryItems)); err != nil {
		return nil, err
	}

	b := gallery.NewBrowser(items)
	b.SetFilter(filter)
	b.Lightbox().Open(item)

	d := &GalleryData{
		Base:   s.base(nav.PathGallery),
		Filter: b.Filter(),
	}
	for _, f := range gallery.Filters {
		d.Filters = append(d.Filters, FilterTab{Label: f, URL: GalleryURL(f, -1), Active: f == d.Filter})
	}
	for i, it := range b.Items() {
		d.Cards = append(d.Cards, GalleryCard{GalleryItem: it, Index: i, URL: GalleryURL(d.Filter, i)})
	}
	if len(d.Cards) == 0 {
		d.EmptyMessage = EmptyGalleryMessage
	}
	d.Lightbox = lightboxView(b)
	return d, nil
}

func lightboxView(b *gallery.Browser) *LightboxView {
	lb := b.Lightbox()
	it, ok := b.Selected()
	if !ok {
		return nil
	}
	i, _ := lb.Current()
	return &LightboxView{
		Item:     it,
		Position: i + 1,
		Total:    lb.Len(),
		PrevURL:  keyTarget(*lb, b.Filter(), gallery.KeyArrowLeft),
		NextURL:  keyTarget(*lb, b.Filter(), gallery.KeyArrowRight),
		CloseURL: keyTarget(*lb, b.Filter(), gallery.KeyEscape),
	}
}

// keyTarget applies k to a copy of lb and returns the address of the state
// it leads to. A key that leaves the lightbox where it is has no target,
// and a closed lightbox ignores every key.
func keyTarget(lb gallery.Lightbox, filter string, k gallery.Key) string {
	before, wasOpen := lb.Current()
	if !wasOpen {
		return ""
	}
	lb.HandleKey(k)
	after, open := lb.Current()
	switch {
	case !open:
		return GalleryURL(filter, -1)
	case after == before:
		return ""
	default:
		return GalleryURL(filter, after)
	}
}
