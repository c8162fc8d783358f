// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/middleware"
	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/store"
	"github.com/olegiv/mirror-creative/internal/testutil"
)

func testSource() content.Source {
	return content.NewMemorySource(&store.SeedData{
		Teachers: []model.Teacher{
			{Record: model.Record{ID: "t1"}, Name: "Ada", Specialization: "Piano"},
			{Record: model.Record{ID: "t2"}, Name: "Ben", Specialization: "Ballet"},
			{Record: model.Record{ID: "t3"}, Name: "Cleo", Specialization: "Painting"},
		},
	})
}

// brokenSource fails every teachers read.
type brokenSource struct{ content.Source }

func (brokenSource) Teachers(context.Context, content.ListOptions) ([]model.Teacher, error) {
	return nil, errors.New("backend down")
}

func newRouter(t *testing.T, src content.Source) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", NewHandler(src, testutil.Logger(t)).Routes)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListCollections(t *testing.T) {
	rec := get(t, newRouter(t, testSource()), "/api/v1/collections")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body CollectionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, model.Collections, body.Collections)
}

func TestGetCollection(t *testing.T) {
	h := newRouter(t, testSource())

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantFirst string
	}{
		{"all", "/api/v1/collections/teachers", 3, "t1"},
		{"limited", "/api/v1/collections/teachers?limit=2", 2, "t1"},
		{"case insensitive", "/api/v1/collections/Teachers", 3, "t1"},
		{"empty collection", "/api/v1/collections/galleryitems", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var body struct {
				Collection string           `json:"collection"`
				Items      []map[string]any `json:"items"`
				Count      int              `json:"count"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCount, body.Count)
			assert.Len(t, body.Items, tt.wantCount)
			assert.NotNil(t, body.Items, "items should be [] rather than null")
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, body.Items[0]["_id"])
			}
		})
	}
}

func TestGetCollection_Errors(t *testing.T) {
	tests := []struct {
		name       string
		src        content.Source
		target     string
		wantStatus int
		wantCode   string
	}{
		{"unknown collection", testSource(), "/api/v1/collections/blogposts", http.StatusNotFound, "not_found"},
		{"non-numeric limit", testSource(), "/api/v1/collections/teachers?limit=abc", http.StatusBadRequest, "bad_request"},
		{"zero limit", testSource(), "/api/v1/collections/teachers?limit=0", http.StatusBadRequest, "bad_request"},
		{"limit too large", testSource(), "/api/v1/collections/teachers?limit=5000", http.StatusBadRequest, "bad_request"},
		{"backend failure", brokenSource{testSource()}, "/api/v1/collections/teachers", http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newRouter(t, tt.src), tt.target)
			require.Equal(t, tt.wantStatus, rec.Code)

			var body middleware.APIError
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{" 5 ", 5, false},
		{"1000", 1000, false},
		{"1001", 0, true},
		{"-1", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLimit(tt.raw)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLimit(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

func TestGetCollection_ConditionalGet(t *testing.T) {
	h := newRouter(t, testSource())

	rec := get(t, h, "/api/v1/collections/teachers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/teachers", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	limited := get(t, h, "/api/v1/collections/teachers?limit=1")
	assert.NotEqual(t, etag, limited.Header().Get("ETag"))
}

func TestRoutes_UnknownPathAndMethod(t *testing.T) {
	h := newRouter(t, testSource())

	rec := get(t, h, "/api/v1/nothing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/collections", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"method_not_allowed"`)
}
