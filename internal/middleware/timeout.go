// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const timeoutBody = "Request timeout"

// Timeout gives each request a deadline. Handlers run on the serving
// goroutine and are expected to return once the context is done. A response
// that had not started by the deadline is replaced with 503, and anything
// the handler writes after that point is dropped.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			dw := &deadlineWriter{ResponseWriter: w, ctx: ctx}
			next.ServeHTTP(dw, r.WithContext(ctx))

			if !dw.started && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(timeoutBody))
			}
		})
	}
}

// deadlineWriter passes writes through until the deadline, unless the
// response already started before it.
type deadlineWriter struct {
	http.ResponseWriter
	ctx     context.Context
	started bool
}

func (dw *deadlineWriter) expired() bool {
	return !dw.started && dw.ctx.Err() != nil
}

func (dw *deadlineWriter) WriteHeader(code int) {
	if dw.started || dw.expired() {
		return
	}
	dw.started = true
	dw.ResponseWriter.WriteHeader(code)
}

func (dw *deadlineWriter) Write(b []byte) (int, error) {
	if dw.expired() {
		return 0, http.ErrHandlerTimeout
	}
	dw.started = true
	return dw.ResponseWriter.Write(b)
}

func (dw *deadlineWriter) Unwrap() http.ResponseWriter {
	return dw.ResponseWriter
}
