// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"container/list"
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrEntryTooLarge is returned by Set when a single value exceeds the
// memory cache byte budget.
var ErrEntryTooLarge = errors.New("cache: entry exceeds byte budget")

// MemoryOptions configures a MemoryCache. Zero limits mean unbounded.
type MemoryOptions struct {
	TTL           time.Duration
	MaxItems      int
	MaxBytes      int64
	SweepInterval time.Duration
}

type memEntry struct {
	key     string
	value   []byte
	expires time.Time
}

// MemoryCache is a process-local LRU cache bounded by entry count and by the
// total size of the stored values. Resized images share it with content
// reads, so the byte bound is the one that usually bites.
type MemoryCache struct {
	opts MemoryOptions
	now  func() time.Time

	mu        sync.Mutex
	order     *list.List // front is most recently used
	entries   map[string]*list.Element
	bytes     int64
	hits      int64
	misses    int64
	evictions int64
	closed    bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory creates a MemoryCache. A positive SweepInterval starts a
// goroutine that drops expired entries; Close stops it.
func NewMemory(opts MemoryOptions) *MemoryCache {
	c := &MemoryCache{
		opts:    opts,
		now:     time.Now,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if opts.SweepInterval > 0 {
		go c.sweepLoop(opts.SweepInterval)
	} else {
		close(c.done)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, ErrMiss
	}
	e := el.Value.(*memEntry)
	if c.now().After(e.expires) {
		c.remove(el)
		c.misses++
		return nil, ErrMiss
	}
	c.order.MoveToFront(el)
	c.hits++
	return append([]byte(nil), e.value...), nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	size := int64(len(value))
	if c.opts.MaxBytes > 0 && size > c.opts.MaxBytes {
		return ErrEntryTooLarge
	}
	if ttl <= 0 {
		ttl = c.opts.TTL
	}
	e := &memEntry{key: key, value: append([]byte(nil), value...), expires: c.now().Add(ttl)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	if el, ok := c.entries[key]; ok {
		c.bytes += size - int64(len(el.Value.(*memEntry).value))
		el.Value = e
		c.order.MoveToFront(el)
	} else {
		c.entries[key] = c.order.PushFront(e)
		c.bytes += size
	}
	c.shrink()
	return nil
}

// shrink evicts from the cold end until both limits hold. The entry just
// written sits at the front and is never evicted.
func (c *MemoryCache) shrink() {
	for c.order.Len() > 1 {
		overItems := c.opts.MaxItems > 0 && c.order.Len() > c.opts.MaxItems
		overBytes := c.opts.MaxBytes > 0 && c.bytes > c.opts.MaxBytes
		if !overItems && !overBytes {
			return
		}
		c.remove(c.order.Back())
		c.evictions++
	}
}

func (c *MemoryCache) remove(el *list.Element) {
	e := c.order.Remove(el).(*memEntry)
	delete(c.entries, e.key)
	c.bytes -= int64(len(e.value))
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	return nil
}

func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	for key, el := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.remove(el)
		}
	}
	return nil
}

// Stats reports traffic since creation.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Backend:   "memory",
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Items:     c.order.Len(),
		Bytes:     c.bytes,
	}
}

func (c *MemoryCache) sweepLoop(every time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep drops expired entries.
func (c *MemoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*memEntry).expires) {
			c.remove(el)
		}
		el = prev
	}
}

// Close stops the sweeper and releases every entry. It is safe to call more
// than once.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.order.Init()
		c.entries = nil
		c.bytes = 0
		c.mu.Unlock()

		close(c.stop)
		<-c.done
	})
	return nil
}

var (
	_ Cache         = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
