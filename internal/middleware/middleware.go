// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware holds the net/http middleware mounted by the router
// and the JSON error body shared with the public API.
package middleware

import (
	"encoding/json"
	"net/http"
	"net/netip"
)

// ContextKey is the type of context keys set by this package.
type ContextKey string

// APIErrorBody describes what went wrong. Code is a stable machine string
// such as "not_found"; Message is for humans.
type APIErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// APIError is the envelope of every API error response.
type APIError struct {
	Error APIErrorBody `json:"error"`
}

// WriteAPIError writes an uncacheable JSON error. details may be nil.
func WriteAPIError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIError{Error: APIErrorBody{Code: code, Message: message, Details: details}})
}

// clientIP returns the address part of r.RemoteAddr, with IPv4-mapped IPv6
// addresses unmapped so one client never gets two buckets. chi's RealIP,
// mounted earlier, has already applied proxy headers.
func clientIP(r *http.Request) string {
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return ap.Addr().Unmap().String()
	}
	if a, err := netip.ParseAddr(r.RemoteAddr); err == nil {
		return a.Unmap().String()
	}
	return r.RemoteAddr
}
