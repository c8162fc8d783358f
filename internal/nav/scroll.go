// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"net/url"
	"sync"
	"time"
)

// FragmentSettleDelay is how long to wait for content to render before
// scrolling to a fragment target.
const FragmentSettleDelay = 100 * time.Millisecond

// ScrollKind is what to do with the scroll position after navigation.
type ScrollKind string

// Scroll kinds.
const (
	ScrollToElement  ScrollKind = "element"
	ScrollTopSmooth  ScrollKind = "top-smooth"
	ScrollTopInstant ScrollKind = "top-instant"
)

// ScrollAction is the scroll decision for one navigation.
type ScrollAction struct {
	Kind   ScrollKind
	Target string        // element id, for ScrollToElement
	Delay  time.Duration // wait before scrolling
}

// Location is the part of a URL that drives scrolling.
type Location struct {
	Path     string
	Fragment string
}

// LocationOf extracts the Location of u.
func LocationOf(u *url.URL) Location {
	path := u.Path
	if path == "" {
		path = "/"
	}
	return Location{Path: path, Fragment: u.Fragment}
}

// ScrollRestorer decides how to scroll on each navigation. It remembers the
// previously observed path.
type ScrollRestorer struct {
	mu       sync.Mutex
	previous string
	seen     bool
}

// Observe records a navigation to loc and returns the scroll to perform:
// a fragment scrolls its element into view after FragmentSettleDelay;
// otherwise staying on the same path scrolls smoothly to the top and
// arriving at a new path jumps to the top.
func (s *ScrollRestorer) Observe(loc Location) ScrollAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	samePage := s.seen && s.previous == loc.Path
	s.previous, s.seen = loc.Path, true

	switch {
	case loc.Fragment != "":
		return ScrollAction{Kind: ScrollToElement, Target: loc.Fragment, Delay: FragmentSettleDelay}
	case samePage:
		return ScrollAction{Kind: ScrollTopSmooth}
	default:
		return ScrollAction{Kind: ScrollTopInstant}
	}
}

// ScrollOnArrival returns the scroll for a page load of current reached
// from previous. previous is nil when the referring page is unknown or on
// another site.
func ScrollOnArrival(previous, current *url.URL) ScrollAction {
	var s ScrollRestorer
	if previous != nil {
		s.Observe(Location{Path: LocationOf(previous).Path})
	}
	return s.Observe(LocationOf(current))
}
