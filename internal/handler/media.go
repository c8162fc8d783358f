// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/mirror-creative/internal/imaging"
	"github.com/olegiv/mirror-creative/internal/media"
	"github.com/olegiv/mirror-creative/internal/middleware"
	"github.com/olegiv/mirror-creative/internal/model"
)

// mediaCacheControl lets browsers keep a variant for a week.
const mediaCacheControl = "public, max-age=604800"

// VariantSource produces resized media variants.
type VariantSource interface {
	Variant(ctx context.Context, variant, name string) (*imaging.Result, error)
}

// MediaHandler serves resized images under /media/{variant}/{name}.
type MediaHandler struct {
	media  VariantSource
	logger *slog.Logger
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(m VariantSource, logger *slog.Logger) *MediaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaHandler{media: m, logger: logger}
}

// Serve handles GET /media/{variant}/*.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	name := chi.URLParam(r, "*")

	res, err := h.media.Variant(r.Context(), variant, name)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUnknownVariant), errors.Is(err, media.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, imaging.ErrUnsupportedFormat):
			http.Error(w, "Unsupported media type", http.StatusUnsupportedMediaType)
		case errors.Is(err, media.ErrTooLarge), errors.Is(err, imaging.ErrTooManyPixels):
			http.Error(w, "Media object too large", http.StatusRequestEntityTooLarge)
		default:
			if r.Context().Err() != nil {
				return
			}
			h.logger.ErrorContext(r.Context(), "media variant failed",
				"variant", variant, "name", name, "error", err, "category", model.EventCategoryMedia)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	middleware.WriteCacheable(w, r, res.ContentType, mediaCacheControl, res.Data)
}
