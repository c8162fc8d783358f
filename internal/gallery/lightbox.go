// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package gallery

// Key names the keyboard keys the lightbox responds to.
type Key string

// Lightbox keys.
const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// Lightbox tracks the index of the item open in a list of size n.
// The zero value is closed over an empty list.
type Lightbox struct {
	n       int
	index   int
	showing bool
}

// NewLightbox returns a closed lightbox over a list of n items.
func NewLightbox(n int) *Lightbox {
	return &Lightbox{n: max(n, 0)}
}

// Len returns the size of the list the lightbox navigates.
func (l *Lightbox) Len() int { return l.n }

// Open shows item i. An index outside the list leaves the lightbox closed
// and reports false.
func (l *Lightbox) Open(i int) bool {
	if i < 0 || i >= l.n {
		l.Close()
		return false
	}
	l.index, l.showing = i, true
	return true
}

// Close hides the lightbox.
func (l *Lightbox) Close() {
	l.index, l.showing = 0, false
}

// Current returns the open index and whether the lightbox is showing.
func (l *Lightbox) Current() (int, bool) {
	return l.index, l.showing
}

// HasNext reports whether Next would move.
func (l *Lightbox) HasNext() bool { return l.showing && l.index < l.n-1 }

// HasPrevious reports whether Previous would move.
func (l *Lightbox) HasPrevious() bool { return l.showing && l.index > 0 }

// Next moves to the following item. It stays put on the last item.
func (l *Lightbox) Next() {
	if l.HasNext() {
		l.index++
	}
}

// Previous moves to the preceding item. It stays put on the first item.
func (l *Lightbox) Previous() {
	if l.HasPrevious() {
		l.index--
	}
}

// HandleKey applies a key press. Keys are ignored while closed.
func (l *Lightbox) HandleKey(k Key) {
	if !l.showing {
		return
	}
	switch k {
	case KeyEscape:
		l.Close()
	case KeyArrowLeft:
		l.Previous()
	case KeyArrowRight:
		l.Next()
	}
}
