// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the website.
package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/mirror-creative/internal/middleware"
	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/nav"
	"github.com/olegiv/mirror-creative/internal/site"
	"github.com/olegiv/mirror-creative/internal/theme"
)

// Template names of the pages.
const (
	pageHome     = "home"
	pageSubject  = "subject"
	pageTeachers = "teachers"
	pageGallery  = "gallery"
	pageBookUs   = "book_us"
	pageEnroll   = "enroll"
	pageAbout    = "about"
	pageError    = "error"
)

// PageHandler renders the site pages.
type PageHandler struct {
	site   *site.Site
	themes *theme.Manager
	logger *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(s *site.Site, themes *theme.Manager, logger *slog.Logger) *PageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandler{site: s, themes: themes, logger: logger}
}

// pageView is implemented by every page view model through site.Base.
type pageView interface {
	SetReducedMotion(bool)
	SetScroll(nav.ScrollAction)
}

// Home handles GET /. ?slide=k selects the initially visible hero slide.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.Home(r.Context(), queryInt(r, "slide"))
	h.respond(w, r, pageHome, data, err)
}

// Subject returns the handler of one subject page. ?style=<id> opens the
// style detail dialog.
func (h *PageHandler) Subject(p site.SubjectPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h.site.Subject(r.Context(), p, r.URL.Query().Get("style"))
		h.respond(w, r, pageSubject, data, err)
	}
}

// Teachers handles GET /teachers.
func (h *PageHandler) Teachers(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.Teachers(r.Context())
	h.respond(w, r, pageTeachers, data, err)
}

// Gallery handles GET /gallery. ?filter=<label> narrows the grid and
// ?item=<i> opens the lightbox on the i-th filtered item.
func (h *PageHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.Gallery(r.Context(), r.URL.Query().Get("filter"), queryInt(r, "item"))
	h.respond(w, r, pageGallery, data, err)
}

// BookUs handles GET /book-us.
func (h *PageHandler) BookUs(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.BookUs(r.Context())
	h.respond(w, r, pageBookUs, data, err)
}

// Enroll handles GET /enroll.
func (h *PageHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, pageEnroll, h.site.Enroll(), nil)
}

// About handles GET /about.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	data, err := h.site.About(r.Context())
	h.respond(w, r, pageAbout, data, err)
}

// NotFound sends every unmatched path back to the home page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	target, _ := nav.Resolve(r.URL.Path)
	http.Redirect(w, r, target, http.StatusFound)
}

// respond renders data unless loading failed. When the request context is
// already done the client is gone or the timeout middleware has answered,
// so nothing is written.
func (h *PageHandler) respond(w http.ResponseWriter, r *http.Request, page string, data pageView, err error) {
	if r.Context().Err() != nil {
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "page load failed",
			"page", page, "error", err, "category", model.EventCategoryHTTP)
		h.renderError(w, r, http.StatusInternalServerError,
			"Something went wrong", "We could not load this page. Please try again later.")
		return
	}

	data.SetReducedMotion(middleware.ClientFromContext(r.Context()).ReducedMotion)
	data.SetScroll(nav.ScrollOnArrival(referrer(r), r.URL))
	h.render(w, r, http.StatusOK, page, data)
}

// render executes the page into a buffer so template errors never produce
// half-written responses.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.themes.RenderPage(&buf, page, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render template",
			"template", page, "error", err, "category", model.EventCategoryHTTP)
		if page == pageError {
			writeFallbackError(w, http.StatusInternalServerError)
			return
		}
		h.renderError(w, r, http.StatusInternalServerError,
			"Something went wrong", "We could not display this page. Please try again later.")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, status int, heading, message string) {
	data := h.site.Error(heading, message)
	data.SetReducedMotion(true)
	h.render(w, r, status, pageError, data)
}

// writeFallbackError is the last resort when even the error template fails.
func writeFallbackError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><title>Error</title></head>
<body>
<h1>%d - %s</h1>
<p>An error occurred while processing your request.</p>
<p><a href="/">Back to Home</a></p>
</body>
</html>`, status, http.StatusText(status))
}

// referrer returns the Referer of r when it points at this site.
func referrer(r *http.Request) *url.URL {
	ref := r.Referer()
	if ref == "" {
		return nil
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host != r.Host {
		return nil
	}
	return u
}

// queryInt parses an integer query parameter. Missing or malformed values give -1.
func queryInt(r *http.Request, key string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return -1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
