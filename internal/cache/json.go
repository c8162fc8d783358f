// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// GetJSON decodes the value stored under key into a T. A missing entry, a
// backend failure and an entry that no longer decodes all report false.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T
	data, err := c.Get(ctx, key)
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return c.Set(ctx, key, data, ttl)
}

// FetchTimeout bounds a shared load started by Fetch. The load is detached
// from the caller that started it, so this is its only deadline.
var FetchTimeout = 30 * time.Second

// Fetch returns the cached T under key or runs load and stores its result.
// Concurrent misses on one key share a single load through group. The load
// runs on a context detached from any one caller: a caller whose ctx ends
// stops waiting with ctx.Err(), while the others still get the result. Load
// errors are returned and never stored; a failed store is ignored because
// the caller already has the value.
func Fetch[T any](ctx context.Context, c Cache, group *singleflight.Group, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := GetJSON[T](ctx, c, key); ok {
		return v, nil
	}

	ch := group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), FetchTimeout)
		defer cancel()
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		_ = SetJSON(loadCtx, c, key, v, ttl)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
