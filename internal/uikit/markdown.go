// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md converts record text to HTML. Raw HTML in the source is dropped by
// goldmark's default renderer; the sanitizer below covers the rest.
var md = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

// sanitizer allows the tags user-generated content needs and forces
// rel="nofollow noopener" with target="_blank" on links.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// Markdown renders s as sanitised HTML. Content records are edited outside
// the site, so their text is never trusted as HTML.
func Markdown(s string) template.HTML {
	if s == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s)) //nolint:gosec // escaped above
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitised by bluemonday
}
