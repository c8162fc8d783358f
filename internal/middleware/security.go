// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Directive is one Content-Security-Policy directive.
type Directive struct {
	Name    string
	Sources []string
}

// CSP is a Content-Security-Policy, rendered in directive order.
type CSP []Directive

func (p CSP) String() string {
	parts := make([]string, 0, len(p))
	for _, d := range p {
		if len(d.Sources) == 0 {
			parts = append(parts, d.Name)
			continue
		}
		parts = append(parts, d.Name+" "+strings.Join(d.Sources, " "))
	}
	return strings.Join(parts, "; ")
}

// SitePolicy is the policy for the site pages. Images may come from any
// https origin because content records reference a CDN.
var SitePolicy = CSP{
	{"default-src", []string{"'self'"}},
	{"script-src", []string{"'self'"}},
	{"style-src", []string{"'self'"}},
	{"img-src", []string{"'self'", "data:", "https:"}},
	{"font-src", []string{"'self'", "data:"}},
	{"connect-src", []string{"'self'"}},
	{"frame-src", []string{"'none'"}},
	{"object-src", []string{"'none'"}},
	{"base-uri", []string{"'self'"}},
	{"form-action", []string{"'self'"}},
	{"frame-ancestors", []string{"'self'"}},
}

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	Policy CSP

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds.
	// Zero disables HSTS.
	HSTSMaxAge            int
	HSTSIncludeSubDomains bool

	FrameOptions      string
	ReferrerPolicy    string
	PermissionsPolicy []string

	// ExcludePaths are path prefixes that skip the headers.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns the headers for the site. HSTS is
// only sent outside development.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		Policy:         SitePolicy,
		FrameOptions:   "SAMEORIGIN",
		ReferrerPolicy: "strict-origin-when-cross-origin",
		PermissionsPolicy: []string{
			"accelerometer=()", "browsing-topics=()", "camera=()", "geolocation=()",
			"gyroscope=()", "microphone=()", "payment=()", "usb=()",
		},
	}
	if !isDev {
		cfg.HSTSMaxAge = 365 * 24 * 60 * 60
		cfg.HSTSIncludeSubDomains = true
	}
	return cfg
}

// Header renders cfg as the fixed set of response headers it adds.
func (cfg SecurityHeadersConfig) Header() http.Header {
	h := http.Header{}
	set := func(k, v string) {
		if v != "" {
			h.Set(k, v)
		}
	}
	set("Content-Security-Policy", cfg.Policy.String())
	if cfg.HSTSMaxAge > 0 {
		hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
		h.Set("Strict-Transport-Security", hsts)
	}
	set("X-Frame-Options", cfg.FrameOptions)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Permissions-Policy", strings.Join(cfg.PermissionsPolicy, ", "))
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	return h
}

// SecurityHeaders returns a middleware that adds the headers of cfg to
// every response outside the excluded paths.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	fixed := cfg.Header()
	excluded := func(path string) bool {
		return slices.ContainsFunc(cfg.ExcludePaths, func(p string) bool { return strings.HasPrefix(path, p) })
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !excluded(r.URL.Path) {
				h := w.Header()
				for k, v := range fixed {
					h[k] = v
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
