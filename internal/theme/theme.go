// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package theme loads the site templates and renders pages through the base
// layout.
package theme

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// baseLayout is the template every page renders inside. It calls
// {{template "content" .}}, which each page file defines.
const baseLayout = "layouts/base.html"

// blankRuns matches runs of blank lines left behind by template actions.
var blankRuns = regexp.MustCompile(`(\r?\n\s*){2,}`)

// Meta is the content of theme.json.
type Meta struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Theme holds one fully linked template set per page, each made of the
// shared layouts and partials plus that page's "content" block.
type Theme struct {
	Meta  Meta
	pages map[string]*template.Template
}

// pageKey maps "pages/home.html" and "home" to "home".
func pageKey(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, "pages/"), ".html")
}

// Pages lists the page names the theme can render, sorted.
func (t *Theme) Pages() []string {
	return slices.Sorted(maps.Keys(t.pages))
}

// Render executes the page within the base layout. Output is buffered, so w
// receives nothing when execution fails.
func (t *Theme) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[pageKey(page)]
	if !ok {
		return fmt.Errorf("theme %q has no page %q", t.Meta.Name, page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, baseLayout, data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	_, err := w.Write(blankRuns.ReplaceAll(buf.Bytes(), []byte("\n")))
	return err
}
