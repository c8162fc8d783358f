// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/mileusna/useragent"
)

const clientKey ContextKey = "client"

// Client describes the requesting user agent.
type Client struct {
	Bot    bool
	Mobile bool
	Tablet bool
	// ReducedMotion disables the hero auto-advance and reveal animations.
	ReducedMotion bool
}

// ClientHints parses the User-Agent and the Sec-CH-Prefers-Reduced-Motion
// hint and stores the result in the request context. Crawlers always get
// reduced motion so they see the first slide and every section.
func ClientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := ParseClient(r.UserAgent(), r.Header.Get("Sec-CH-Prefers-Reduced-Motion"))
		w.Header().Add("Accept-CH", "Sec-CH-Prefers-Reduced-Motion")
		w.Header().Add("Vary", "Sec-CH-Prefers-Reduced-Motion")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientKey, c)))
	})
}

// ParseClient builds a Client from a User-Agent string and the value of the
// reduced-motion client hint.
func ParseClient(userAgent, prefersReducedMotion string) Client {
	ua := useragent.Parse(userAgent)
	c := Client{
		Bot:    ua.Bot,
		Mobile: ua.Mobile,
		Tablet: ua.Tablet,
	}
	c.ReducedMotion = c.Bot || prefersReducedMotion == "reduce"
	return c
}

// ClientFromContext returns the client stored by ClientHints, or the zero
// Client when the middleware did not run.
func ClientFromContext(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey).(Client)
	return c
}
