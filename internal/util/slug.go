// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util turns display text into element ids and validates media
// object names taken from URLs.
package util

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes and drops combining marks: "é" becomes "e".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases s to ASCII letters and digits joined by single
// hyphens. Accented letters lose their marks and other scripts are
// transliterated, so "Привет мир" becomes "privet-mir".
func Slugify(s string) string {
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = unidecode.Unidecode(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
		// Other punctuation is dropped without separating words.
	}
	return b.String()
}

// FragmentID returns an element id for a heading or record, prefixed so it
// never starts with a digit. An empty slug falls back to prefix alone.
func FragmentID(prefix, s string) string {
	if slug := Slugify(s); slug != "" {
		return prefix + "-" + slug
	}
	return prefix
}
