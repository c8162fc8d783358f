// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media reads image objects from a local directory or a Cloud
// Storage bucket and serves cached, resized variants of them.
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olegiv/mirror-creative/internal/cache"
	"github.com/olegiv/mirror-creative/internal/imaging"
	"github.com/olegiv/mirror-creative/internal/util"
)

// MaxObjectSize caps how many bytes are read from a single object.
const MaxObjectSize = 20 << 20

var (
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("media object not found")
	// ErrUnknownVariant is returned for a variant name that is not served.
	ErrUnknownVariant = errors.New("unknown media variant")
	// ErrTooLarge is returned when an object exceeds MaxObjectSize.
	ErrTooLarge = errors.New("media object too large")
)

// Store reads original media objects by slash separated name.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// Service resizes objects from a Store into the standard variants and
// caches the encoded results.
type Service struct {
	store  Store
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewService creates a Service. Variants are kept in c for ttl.
func NewService(store Store, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func variantKey(variant, name string) string {
	return "media:" + variant + ":" + name
}

// Variant returns the named variant of the object. Concurrent requests for
// the same variant share one resize.
func (s *Service) Variant(ctx context.Context, variant, name string) (*imaging.Result, error) {
	v, ok := imaging.LookupVariant(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	name, err := util.CleanObjectName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	key := variantKey(v.Name, name)
	if res, ok := cache.GetJSON[*imaging.Result](ctx, s.cache, key); ok && res != nil {
		return res, nil
	}

	out, err, _ := s.group.Do(key, func() (any, error) {
		data, err := s.store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		res, err := imaging.Resize(data, v)
		if err != nil {
			return nil, fmt.Errorf("resizing %s: %w", name, err)
		}
		if err := cache.SetJSON(ctx, s.cache, key, res, s.ttl); err != nil {
			s.logger.Warn("caching media variant failed", "key", key, "error", err, "category", "media")
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*imaging.Result), nil
}
