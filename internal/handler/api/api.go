// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the read-only JSON API over the content collections.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/middleware"
	"github.com/olegiv/mirror-creative/internal/model"
)

// MaxLimit is the largest accepted ?limit value.
const MaxLimit = 1000

const (
	contentTypeJSON = "application/json"

	// Collections change rarely; a minute keeps edits visible quickly.
	collectionCacheControl = "public, max-age=60"
)

// Error codes of the API error envelope.
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"
)

// Handler serves the collection endpoints.
type Handler struct {
	src    content.Source
	logger *slog.Logger
}

// NewHandler creates a new API handler reading from src.
func NewHandler(src content.Source, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{src: src, logger: logger}
}

// Routes mounts the handlers on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/collections", h.ListCollections)
	r.Get("/collections/{name}", h.GetCollection)
	r.NotFound(NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})
}

// NotFound answers unknown API paths with the JSON error envelope.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Not found", nil)
}

// CollectionsResponse lists the collection names.
type CollectionsResponse struct {
	Collections []model.Collection `json:"collections"`
}

// ListCollections handles GET /api/v1/collections.
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, CollectionsResponse{Collections: model.Collections})
}

// GetCollection handles GET /api/v1/collections/{name}?limit=n.
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, ok := model.ParseCollection(name)
	if !ok {
		middleware.WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Collection not found: "+name, nil)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		middleware.WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid query parameter",
			map[string]string{"limit": err.Error()})
		return
	}

	res, err := content.GetAll(r.Context(), h.src, c, content.ListOptions{Limit: limit})
	switch {
	case errors.Is(err, content.ErrUnknownCollection):
		middleware.WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Collection not found: "+name, nil)
	case err != nil && r.Context().Err() != nil:
		// Client went away; nothing to answer.
	case err != nil:
		h.logger.ErrorContext(r.Context(), "collection read failed",
			"collection", c, "error", err, "category", model.EventCategoryContent)
		middleware.WriteAPIError(w, http.StatusInternalServerError, CodeInternal, "Failed to read collection", nil)
	default:
		h.respond(w, r, res)
	}
}

// respond writes v as a cacheable JSON document.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "api response encoding failed", "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, CodeInternal, "Failed to encode response", nil)
		return
	}
	middleware.WriteCacheable(w, r, contentTypeJSON, collectionCacheControl, append(body, '\n'))
}

// parseLimit accepts an empty value (no limit) or an integer in 1..MaxLimit.
func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if n < 1 || n > MaxLimit {
		return 0, fmt.Errorf("must be between 1 and %d", MaxLimit)
	}
	return n, nil
}
