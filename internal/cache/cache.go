// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache holds the byte caches that sit in front of the content
// backends and the media resizer. One process uses either the in-memory LRU
// or a Redis instance shared by every replica.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrMiss is returned by Get for absent and expired keys.
	ErrMiss = errors.New("cache: miss")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("cache: closed")
)

// Cache stores opaque values under string keys. Implementations are safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value for ttl; a zero ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}

// StatsProvider is implemented by caches that count their traffic.
type StatsProvider interface {
	Stats() Stats
}

// Stats is a point-in-time snapshot of cache traffic, reported on /health.
type Stats struct {
	Backend   string `json:"backend"`
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Evictions int64  `json:"evictions,omitempty"`
	Items     int    `json:"items"`
	Bytes     int64  `json:"bytes,omitempty"`
}

// HitRatio returns hits over lookups in [0,1], or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	if n := s.Hits + s.Misses; n > 0 {
		return float64(s.Hits) / float64(n)
	}
	return 0
}
