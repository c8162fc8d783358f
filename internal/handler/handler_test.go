// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/handler/api"
	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/site"
	"github.com/olegiv/mirror-creative/internal/store"
	"github.com/olegiv/mirror-creative/internal/theme"
	"github.com/olegiv/mirror-creative/internal/uikit"
	"github.com/olegiv/mirror-creative/web"
)

const (
	testSiteURL = "https://mirror.test"
	googlebotUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
	desktopUA   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

func rec(id string) model.Record { return model.Record{ID: id} }

func fixture() *store.SeedData {
	return &store.SeedData{
		CoreValues: []model.CoreValue{
			{Record: rec("v1"), Name: "Passion", DisplayOrder: 1, IsActive: true},
		},
		CreativeSubjects: []model.CreativeSubject{
			{Record: rec("s1"), Name: "Visual Art", Category: "Art", Description: "Paint and draw."},
		},
		SubjectStyles: []model.SubjectStyle{
			{Record: rec("st1"), Name: "Oil Painting", Description: "Layered colour."},
			{Record: rec("st2"), Name: "Ballet"},
			{Record: rec("st3"), Name: "Digital Art"},
		},
		GalleryItems: []model.GalleryItem{
			{Record: rec("g1"), Title: "One", Category: "Classes"},
			{Record: rec("g2"), Title: "Two", Category: "Concerts"},
			{Record: rec("g3"), Title: "Three", Category: "classes"},
		},
		StudentTestimonials: []model.StudentTestimonial{
			{Record: rec("t1"), Name: "Ana", Course: "Piano", Text: "Loved it."},
		},
		Teachers: []model.Teacher{
			{Record: rec("te1"), Name: "Maya", Specialization: "Violin"},
		},
		PerformanceServices: []model.PerformanceService{{Record: rec("p1"), Name: "Weddings"}},
	}
}

func testThemes(t *testing.T) *theme.Manager {
	t.Helper()
	mgr := theme.NewManager(web.Templates(), uikit.TemplateFuncs(), slog.New(slog.DiscardHandler))
	require.NoError(t, mgr.Load())
	return mgr
}

func testPages(t *testing.T) *PageHandler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	s := site.New(site.DefaultSettings(), content.NewMemorySource(fixture()), logger,
		site.WithClock(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }))
	return NewPageHandler(s, testThemes(t), logger)
}

func testRouter(t *testing.T, modify ...func(*RouterConfig)) http.Handler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	cfg := RouterConfig{
		Pages:        testPages(t),
		API:          api.NewHandler(content.NewMemorySource(fixture()), logger),
		Media:        NewMediaHandler(fakeVariants{}, logger),
		SEO:          NewSEOHandler(testSiteURL, "info@mirror.test", true, logger),
		Static:       web.Static(),
		APIRateLimit: 100,
		APIRateBurst: 100,
	}
	for _, m := range modify {
		m(&cfg)
	}
	return NewRouter(cfg)
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestRouter_UnknownPathRedirectsHome(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/nope", "/subjects/art", "/gallery/extra"} {
		t.Run(path, func(t *testing.T) {
			w := get(t, r, path)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
		})
	}
}

func TestRouter_TrailingSlashRedirect(t *testing.T) {
	w := get(t, testRouter(t), "/gallery/?filter=Classes")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/gallery?filter=Classes", w.Header().Get("Location"))
}

func TestRouter_EveryPageRenders(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/", "/instruments", "/singing", "/dancing", "/art",
		"/teachers", "/gallery", "/book-us", "/enroll", "/about"} {
		t.Run(path, func(t *testing.T) {
			w := get(t, r, path)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))

			doc := parseHTML(t, w)
			assert.Equal(t, 1, doc.Find("header.site-header").Length())
			assert.Equal(t, path, doc.Find("body").AttrOr("data-path", ""))
		})
	}
}

func TestGalleryPage_FilterAndLightbox(t *testing.T) {
	w := get(t, testRouter(t), "/gallery?filter=classes&item=1")
	require.Equal(t, http.StatusOK, w.Code)
	doc := parseHTML(t, w)

	assert.Equal(t, "Classes", strings.TrimSpace(doc.Find(".filter-tab.active").Text()))

	var titles []string
	doc.Find(".gallery-card .gallery-title").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Equal(t, []string{"One", "Three"}, titles)

	lb := doc.Find(".lightbox")
	require.Equal(t, 1, lb.Length())
	assert.Equal(t, "Three", lb.Find("h2").Text())
	assert.Equal(t, "2 / 2", lb.Find(".counter").Text())
	assert.Equal(t, "/gallery?filter=Classes&item=0", lb.Find(".lightbox-prev").AttrOr("href", ""))
	assert.Equal(t, 0, lb.Find(".lightbox-next").Length())
	assert.Equal(t, "/gallery?filter=Classes", lb.Find(".lightbox-close").AttrOr("href", ""))

	assert.Equal(t, "/gallery?filter=Classes&item=0", lb.AttrOr("data-key-arrow-left", ""))
	assert.Equal(t, "/gallery?filter=Classes", lb.AttrOr("data-key-escape", ""))
	_, hasNext := lb.Attr("data-key-arrow-right")
	assert.False(t, hasNext, "no key target past the last item")
}

func TestGalleryPage_EmptyCategory(t *testing.T) {
	doc := parseHTML(t, get(t, testRouter(t), "/gallery?filter=Events&item=0"))

	assert.Equal(t, 0, doc.Find(".gallery-card").Length())
	assert.Equal(t, site.EmptyGalleryMessage, doc.Find("p.empty").Text())
	assert.Equal(t, 0, doc.Find(".lightbox").Length())
}

func TestHomePage_SlideOverride(t *testing.T) {
	r := testRouter(t)

	doc := parseHTML(t, get(t, r, "/?slide=1"))
	active := doc.Find(".hero .slide.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "1", active.AttrOr("data-slide", ""))

	doc = parseHTML(t, get(t, r, "/?slide=99"))
	assert.Equal(t, "0", doc.Find(".hero .slide.active").AttrOr("data-slide", ""))
}

func TestSubjectPage_StyleDetail(t *testing.T) {
	r := testRouter(t)

	doc := parseHTML(t, get(t, r, "/art?style=st1"))
	assert.Equal(t, 2, doc.Find(".style-card").Length(), "oil painting and digital art")
	assert.Equal(t, "Oil Painting", doc.Find(".modal #style-title").Text())

	doc = parseHTML(t, get(t, r, "/art?style=st2"))
	assert.Equal(t, 0, doc.Find(".modal").Length(), "ballet is not an art style")
}

func TestPages_ReducedMotion(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name   string
		header []string
		want   bool
	}{
		{"crawler", []string{"User-Agent", googlebotUA}, true},
		{"client hint", []string{"User-Agent", desktopUA, "Sec-CH-Prefers-Reduced-Motion", "reduce"}, true},
		{"desktop", []string{"User-Agent", desktopUA}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, "/", tt.header...)
			assert.Contains(t, w.Header().Get("Accept-CH"), "Sec-CH-Prefers-Reduced-Motion")
			_, got := parseHTML(t, w).Find("body").Attr("data-reduced-motion")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPages_ScrollOnArrival(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{"no referrer", nil, "top-instant"},
		{"from another page", []string{"Referer", "http://example.com/teachers"}, "top-instant"},
		{"same page", []string{"Referer", "http://example.com/about"}, "top-smooth"},
		{"other site", []string{"Referer", "https://elsewhere.test/about"}, "top-instant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := parseHTML(t, get(t, r, "/about", tt.header...)).Find("body")
			assert.Equal(t, tt.want, body.AttrOr("data-scroll", ""))
			assert.Equal(t, "100", body.AttrOr("data-scroll-settle-ms", ""))
		})
	}
}

func TestPages_CancelledRequestWritesNothing(t *testing.T) {
	h := testPages(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/gallery", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.Gallery(w, req)

	assert.Zero(t, w.Body.Len())
}

func TestPages_TemplateFailureFallsBack(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	s := site.New(site.DefaultSettings(), content.NewMemorySource(fixture()), logger)
	// A manager that was never loaded fails every render, including the error page.
	h := NewPageHandler(s, theme.NewManager(web.Templates(), uikit.TemplateFuncs(), logger), logger)

	w := httptest.NewRecorder()
	h.Teachers(w, httptest.NewRequest(http.MethodGet, "/teachers", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "500 - Internal Server Error")
	assert.Contains(t, w.Body.String(), `href="/"`)
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", -1},
		{"n=3", 3},
		{"n=0", 0},
		{"n=-2", -1},
		{"n=abc", -1},
		{"n=%202%20", 2},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		assert.Equal(t, tt.want, queryInt(req, "n"), tt.query)
	}
}

func TestRouter_Static(t *testing.T) {
	w := get(t, testRouter(t), "/static/css/site.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
}

func TestRouter_API(t *testing.T) {
	r := testRouter(t)

	w := get(t, r, "/api/v1/collections/teachers")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"teacherName":"Maya"`)

	w = get(t, r, "/api/v2/whatever")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"not_found"`)
}

func TestPages_StructuredData(t *testing.T) {
	r := testRouter(t)

	ld := parseHTML(t, get(t, r, "/gallery")).Find(`script[type="application/ld+json"]`).Text()
	assert.Contains(t, ld, `"EducationalOrganization"`)
	assert.Contains(t, ld, `"BreadcrumbList"`)
	assert.Contains(t, ld, `"item": "`+site.DefaultSettings().URL+`/gallery"`)

	ld = parseHTML(t, get(t, r, "/")).Find(`script[type="application/ld+json"]`).Text()
	assert.NotContains(t, ld, "BreadcrumbList")
}
