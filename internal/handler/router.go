// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/mirror-creative/internal/handler/api"
	"github.com/olegiv/mirror-creative/internal/middleware"
	"github.com/olegiv/mirror-creative/internal/nav"
	"github.com/olegiv/mirror-creative/internal/site"
	"github.com/olegiv/mirror-creative/internal/telemetry"
)

// staticCacheControl lets browsers keep /static assets for a day.
const staticCacheControl = "public, max-age=86400"

// RouterConfig holds the handlers and HTTP settings of the site.
type RouterConfig struct {
	Pages  *PageHandler
	API    *api.Handler
	Media  *MediaHandler
	SEO    *SEOHandler
	Health *HealthHandler
	Static fs.FS

	IsDevelopment  bool
	RequestTimeout time.Duration
	APIRateLimit   float64
	APIRateBurst   int
	AllowedOrigins []string

	// AccessLog enables chi's request logger.
	AccessLog bool
	// Tracing wraps the router in an OpenTelemetry server span middleware.
	Tracing     bool
	ServiceName string
}

// NewRouter builds the HTTP handler of the site.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.CanonicalPath)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))

	if cfg.Health != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl("no-store"))
			r.Get("/health", cfg.Health.Health)
			r.Get("/health/live", cfg.Health.Liveness)
			r.Get("/health/ready", cfg.Health.Readiness)
		})
	}

	if cfg.Static != nil {
		r.With(middleware.CacheControl(staticCacheControl)).
			Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(cfg.Static)))
	}

	if cfg.Media != nil {
		r.Get("/media/{variant}/*", cfg.Media.Serve)
	}

	if cfg.SEO != nil {
		r.Get("/sitemap.xml", cfg.SEO.Sitemap)
		r.Get("/robots.txt", cfg.SEO.Robots)
		r.Get("/.well-known/security.txt", cfg.SEO.SecurityTxt)
	}

	if cfg.API != nil {
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.CORS(cfg.AllowedOrigins))
			r.Use(middleware.NewIPRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst).Middleware())
			r.NotFound(api.NotFound)
			r.Route("/v1", cfg.API.Routes)
		})
	}

	if cfg.Pages != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.ClientHints)
			r.Get(nav.PathHome, cfg.Pages.Home)
			for _, p := range site.SubjectPages {
				r.Get(p.Path, cfg.Pages.Subject(p))
			}
			r.Get(nav.PathTeachers, cfg.Pages.Teachers)
			r.Get(nav.PathGallery, cfg.Pages.Gallery)
			r.Get(nav.PathBookUs, cfg.Pages.BookUs)
			r.Get(nav.PathEnroll, cfg.Pages.Enroll)
			r.Get(nav.PathAbout, cfg.Pages.About)
		})
		r.NotFound(cfg.Pages.NotFound)
	}

	if cfg.Tracing {
		return telemetry.Middleware(cfg.ServiceName)(r)
	}
	return r
}
