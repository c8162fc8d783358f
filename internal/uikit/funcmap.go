// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides the template helpers shared by every page template.
package uikit

import (
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/olegiv/mirror-creative/internal/util"
)

const (
	displayDate = "Jan 2, 2006"
	ellipsis    = "…"
)

// TemplateFuncs returns the template.FuncMap used by the theme.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"anchor":     util.FragmentID,
		"markdown":   Markdown,
		"paragraphs": Paragraphs,
		"initial":    Initial,
		"excerpt":    Excerpt,
		"formatDate": FormatDate,
		"isoDate":    ISODate,
		"repeat":     func(n int) []struct{} { return make([]struct{}, max(n, 0)) },
		"add":        func(a, b int) int { return a + b },
		"even":       func(i int) bool { return i%2 == 0 },
	}
}

// FormatDate renders a date as "Jan 2, 2006". The zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDate)
}

// ISODate renders t for a datetime attribute. The zero time renders empty.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Initial returns the upper-cased first letter of name, for avatar
// placeholders of teachers without a photo.
func Initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// Excerpt shortens text to at most n runes, cutting at a word boundary
// when one exists in the second half.
func Excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	cut := r[:n]
	if i := strings.LastIndexByte(string(cut), ' '); i > len(string(cut))/2 {
		return string(cut)[:i] + ellipsis
	}
	return string(cut) + ellipsis
}

// Paragraphs splits text on blank lines, dropping empty paragraphs.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for p := range strings.SplitSeq(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
