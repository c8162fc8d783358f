// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/olegiv/mirror-creative/internal/model"
)

const (
	sweepInterval    = time.Minute
	redisPoolSize    = 10
	redisDialTimeout = 5 * time.Second
)

// Options selects and sizes the cache backend.
type Options struct {
	RedisURL string // Redis is used when set and reachable
	Prefix   string // Redis key namespace
	TTL      time.Duration
	MaxItems int   // memory backend only
	MaxBytes int64 // memory backend only
}

// New opens the Redis cache when configured and otherwise, or when Redis does
// not answer, the in-memory LRU. The site keeps serving without Redis.
func New(ctx context.Context, opts Options, logger *slog.Logger) Cache {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.RedisURL != "" {
		rc, err := NewRedis(ctx, RedisOptions{
			URL:         opts.RedisURL,
			Prefix:      opts.Prefix,
			TTL:         opts.TTL,
			PoolSize:    redisPoolSize,
			DialTimeout: redisDialTimeout,
		})
		if err == nil {
			logger.Info("cache backend ready", "backend", "redis",
				"url", RedactURL(opts.RedisURL), "prefix", opts.Prefix)
			return rc
		}
		logger.Warn("redis unavailable, using memory cache",
			"url", RedactURL(opts.RedisURL), "error", err, "category", model.EventCategoryCache)
	}

	logger.Info("cache backend ready", "backend", "memory",
		"max_items", opts.MaxItems, "max_bytes", opts.MaxBytes, "ttl", opts.TTL)
	return NewMemory(MemoryOptions{
		TTL:           opts.TTL,
		MaxItems:      opts.MaxItems,
		MaxBytes:      opts.MaxBytes,
		SweepInterval: sweepInterval,
	})
}

// RedactURL hides the password of a connection URL for logging.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	return u.Redacted()
}
