// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/nav"
	"github.com/olegiv/mirror-creative/internal/seo"
)

// SEOHandler serves sitemap.xml, robots.txt and security.txt.
type SEOHandler struct {
	siteURL      string
	contactEmail string
	indexable    bool
	logger       *slog.Logger
	now          func() time.Time
	gallery      content.Source
}

// NewSEOHandler creates a new SEO handler. Crawlers are turned away
// entirely unless indexable is set.
func NewSEOHandler(siteURL, contactEmail string, indexable bool, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{
		siteURL:      siteURL,
		contactEmail: contactEmail,
		indexable:    indexable,
		logger:       logger,
		now:          time.Now,
	}
}

// WithGallery lists the gallery images under the /gallery sitemap entry.
func (h *SEOHandler) WithGallery(src content.Source) *SEOHandler {
	h.gallery = src
	return h
}

// Sitemap handles GET /sitemap.xml. Every route of the site is listed.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries := make([]seo.Entry, 0, len(nav.Routes))
	for _, route := range nav.Routes {
		e := seo.Entry{Path: route.Path, ChangeFreq: seo.ChangeFreqMonthly, Priority: 0.7}
		switch {
		case route.Path == nav.PathHome:
			e.ChangeFreq, e.Priority = seo.ChangeFreqWeekly, 1
		case route.Path == nav.PathGallery:
			e.ChangeFreq, e.Priority = seo.ChangeFreqWeekly, 0.8
			e.Images, e.LastMod = h.galleryImages(r.Context())
		case route.Path == nav.PathTeachers:
			e.ChangeFreq, e.Priority = seo.ChangeFreqWeekly, 0.8
		case nav.IsSubjectPath(route.Path):
			e.Priority = 0.9
		}
		entries = append(entries, e)
	}

	out, err := seo.BuildSitemap(h.siteURL, entries)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "sitemap generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(out)
}

// galleryImages returns the gallery images and the newest DateTaken. A read
// failure only costs the image listing.
func (h *SEOHandler) galleryImages(ctx context.Context) ([]seo.Image, time.Time) {
	if h.gallery == nil {
		return nil, time.Time{}
	}
	items, err := h.gallery.GalleryItems(ctx, content.ListOptions{})
	if err != nil {
		h.logger.WarnContext(ctx, "sitemap gallery read failed", "error", err)
		return nil, time.Time{}
	}
	var (
		images []seo.Image
		newest time.Time
	)
	for _, it := range items {
		if it.Image != "" {
			images = append(images, seo.Image{Loc: it.Image, Title: it.Title})
		}
		if it.DateTaken.After(newest) {
			newest = it.DateTaken
		}
	}
	return images, newest
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	body := seo.SiteRobots(h.siteURL, h.indexable).Build()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

// SecurityTxt handles GET /.well-known/security.txt.
func (h *SEOHandler) SecurityTxt(w http.ResponseWriter, _ *http.Request) {
	body := seo.SecurityTxt{
		Contact:            []string{nav.MailTo(h.contactEmail)},
		Canonical:          h.siteURL + "/.well-known/security.txt",
		PreferredLanguages: "en",
	}.Build(h.now())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
