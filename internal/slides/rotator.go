// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package slides rotates the home page hero slides on a fixed interval.
package slides

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how long each slide stays up.
const DefaultInterval = 5000 * time.Millisecond

// Slide is one hero banner.
type Slide struct {
	Title   string
	Tagline string
	Image   string
}

// Ticker delivers ticks until stopped. *time.Ticker satisfies it through
// realTicker; tests substitute a manual one.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// Option configures a Rotator.
type Option func(*Rotator)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(r *Rotator) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithTicker replaces the ticker factory.
func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(r *Rotator) { r.newTicker = newTicker }
}

// Rotator advances through slides in order, wrapping at the end.
type Rotator struct {
	slides    []Slide
	interval  time.Duration
	newTicker func(time.Duration) Ticker

	mu      sync.Mutex
	index   int
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRotator returns a stopped rotator showing the first slide.
func NewRotator(slides []Slide, opts ...Option) *Rotator {
	r := &Rotator{
		slides:   slides,
		interval: DefaultInterval,
		newTicker: func(d time.Duration) Ticker {
			return realTicker{time.NewTicker(d)}
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Slides returns the slides in display order.
func (r *Rotator) Slides() []Slide { return r.slides }

// Interval returns the time each slide stays up.
func (r *Rotator) Interval() time.Duration { return r.interval }

// Current returns the index and slide on display. With no slides it returns
// -1 and the zero Slide.
func (r *Rotator) Current() (int, Slide) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slides) == 0 {
		return -1, Slide{}
	}
	return r.index, r.slides[r.index]
}

// Select jumps to slide k immediately. The tick cadence is not reset.
// Out-of-range k is ignored and reported as false.
func (r *Rotator) Select(k int) bool {
	if k < 0 || k >= len(r.slides) {
		return false
	}
	r.mu.Lock()
	r.index = k
	r.mu.Unlock()
	return true
}

// advance moves to the next slide, wrapping to the first.
func (r *Rotator) advance() {
	r.mu.Lock()
	r.index = (r.index + 1) % len(r.slides)
	r.mu.Unlock()
}

// Start advances the slide every interval until Stop is called or ctx is
// done. Starting a running rotator, or one with fewer than two slides, does
// nothing.
func (r *Rotator) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running || len(r.slides) < 2 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := r.newTicker(r.interval)
	done := make(chan struct{})
	r.running, r.cancel, r.done = true, cancel, done

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.release(done)
				return
			case <-ticker.C():
				r.advance()
			}
		}
	}()
}

// release clears the running state if it still belongs to the goroutine
// that owns done. A Stop or a newer Start has already replaced it otherwise.
func (r *Rotator) release(done chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done == done {
		r.cancel()
		r.running, r.cancel, r.done = false, nil, nil
	}
}

// Stop halts rotation and waits for the rotation goroutine to exit.
func (r *Rotator) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel, done := r.cancel, r.done
	r.running, r.cancel, r.done = false, nil, nil
	r.mu.Unlock()

	cancel()
	<-done
}

// Running reports whether the rotator is advancing.
func (r *Rotator) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// IndexAt returns the slide shown after elapsed time from index 0 with no
// manual selection: floor(elapsed/interval) mod n.
func IndexAt(elapsed, interval time.Duration, n int) int {
	if n <= 0 || interval <= 0 || elapsed < 0 {
		return 0
	}
	return int((elapsed / interval) % time.Duration(n))
}
