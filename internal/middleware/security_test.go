// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS string
	}{
		{name: "production", isDev: false, wantHSTS: "max-age=31536000; includeSubDomains"},
		{name: "development", isDev: true, wantHSTS: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SecurityHeaders(DefaultSecurityHeadersConfig(tt.isDev))(okHandler)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if got := rec.Header().Get("Strict-Transport-Security"); got != tt.wantHSTS {
				t.Errorf("HSTS = %q, want %q", got, tt.wantHSTS)
			}
			for k, want := range map[string]string{
				"X-Content-Type-Options":     "nosniff",
				"X-Frame-Options":            "SAMEORIGIN",
				"Cross-Origin-Opener-Policy": "same-origin",
			} {
				if got := rec.Header().Get(k); got != want {
					t.Errorf("%s = %q, want %q", k, got, want)
				}
			}
			csp := rec.Header().Get("Content-Security-Policy")
			if !strings.HasPrefix(csp, "default-src 'self'; script-src 'self'") {
				t.Errorf("CSP = %q, want directives in fixed order", csp)
			}
			if !strings.Contains(csp, "img-src 'self' data: https:") {
				t.Errorf("CSP = %q, want remote https images allowed", csp)
			}
			if !strings.HasPrefix(rec.Header().Get("Permissions-Policy"), "accelerometer=(), ") {
				t.Errorf("Permissions-Policy = %q", rec.Header().Get("Permissions-Policy"))
			}
		})
	}
}

func TestCSP_String(t *testing.T) {
	p := CSP{{"default-src", []string{"'none'"}}, {"upgrade-insecure-requests", nil}}
	if got, want := p.String(), "default-src 'none'; upgrade-insecure-requests"; got != want {
		t.Errorf("CSP = %q, want %q", got, want)
	}
}

func TestSecurityHeaders_ExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/media/"}
	h := SecurityHeaders(cfg)(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/thumb/a.jpg", nil))
	if got := rec.Header().Get("Content-Security-Policy"); got != "" {
		t.Errorf("CSP = %q on excluded path, want none", got)
	}
}
