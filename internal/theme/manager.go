// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sync"
)

// Manager owns the active theme. Reload re-parses the templates, which lets
// development runs pick up template edits from disk.
type Manager struct {
	fsys    fs.FS
	funcMap template.FuncMap
	logger  *slog.Logger

	mu     sync.RWMutex
	active *Theme
}

// NewManager creates a manager reading templates from fsys. fsys holds
// theme.json plus layouts/, partials/ and pages/ directories.
func NewManager(fsys fs.FS, funcMap template.FuncMap, logger *slog.Logger) *Manager {
	if funcMap == nil {
		funcMap = template.FuncMap{}
	}
	return &Manager{fsys: fsys, funcMap: funcMap, logger: logger}
}

// Load parses the theme and makes it active.
func (m *Manager) Load() error {
	t, err := m.parse()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.active = t
	m.mu.Unlock()

	m.logger.Info("theme loaded", "theme", t.Meta.Name, "version", t.Meta.Version, "pages", len(t.pages))
	return nil
}

// Reload re-parses the theme. On failure the previous theme stays active.
func (m *Manager) Reload() error {
	if err := m.Load(); err != nil {
		m.logger.Warn("theme reload failed", "error", err)
		return err
	}
	return nil
}

// Theme returns the active theme, or nil before Load.
func (m *Manager) Theme() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// RenderPage renders pageName with the active theme.
func (m *Manager) RenderPage(w io.Writer, pageName string, data any) error {
	t := m.Theme()
	if t == nil {
		return errors.New("no theme loaded")
	}
	return t.Render(w, pageName, data)
}

func (m *Manager) parse() (*Theme, error) {
	var meta Meta
	raw, err := fs.ReadFile(m.fsys, "theme.json")
	if err != nil {
		return nil, fmt.Errorf("reading theme.json: %w", err)
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parsing theme.json: %w", err)
	}

	// Layouts keep their relative path; partials are addressed by file
	// name, as in {{template "header.html" .}}.
	shared := template.New("").Funcs(m.funcMap)
	for _, dir := range []string{"layouts", "partials"} {
		files, err := fs.Glob(m.fsys, dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			name := f
			if dir == "partials" {
				name = path.Base(f)
			}
			if err := m.parseFile(shared, name, f); err != nil {
				return nil, err
			}
		}
	}
	if shared.Lookup(baseLayout) == nil {
		return nil, fmt.Errorf("theme %q has no %s", meta.Name, baseLayout)
	}

	files, err := fs.Glob(m.fsys, "pages/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		// Every page defines "content", so each gets its own copy of the
		// shared set.
		set, err := shared.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning templates for %s: %w", f, err)
		}
		if err := m.parseFile(set, f, f); err != nil {
			return nil, err
		}
		pages[pageKey(f)] = set
	}
	return &Theme{Meta: meta, pages: pages}, nil
}

func (m *Manager) parseFile(set *template.Template, name, file string) error {
	src, err := fs.ReadFile(m.fsys, file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	if _, err := set.New(name).Parse(string(src)); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}
	return nil
}
