// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"net/url"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		matched bool
	}{
		{"/", "/", true},
		{"/gallery", "/gallery", true},
		{"/gallery/", "/gallery", true},
		{"/book-us", "/book-us", true},
		{"/unknown-path", "/", false},
		{"/gallery/extra", "/", false},
		{"/privacy", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Resolve(tt.path)
			if got != tt.want || ok != tt.matched {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.matched)
			}
		})
	}
}

func TestRoutes_UniqueAndLinked(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Routes {
		if seen[r.Path] {
			t.Errorf("duplicate route %q", r.Path)
		}
		seen[r.Path] = true
	}

	for _, group := range [][]Link{Subjects, HeaderLinks, QuickLinks} {
		for _, l := range group {
			if !seen[l.Href] {
				t.Errorf("link %q points at unregistered path %q", l.Label, l.Href)
			}
		}
	}
}

func TestIsSubjectPath(t *testing.T) {
	for _, p := range []string{PathInstruments, PathSinging, PathDancing, PathArt} {
		if !IsSubjectPath(p) {
			t.Errorf("IsSubjectPath(%q) = false", p)
		}
	}
	if IsSubjectPath(PathTeachers) {
		t.Error("IsSubjectPath(/teachers) = true")
	}
}

func TestContactLinks(t *testing.T) {
	if got := MailTo("info@mirrorcreative.com"); got != "mailto:info@mirrorcreative.com" {
		t.Errorf("MailTo() = %q", got)
	}
	if got := Tel("+1 (234) 567-890"); got != "tel:+1234567890" {
		t.Errorf("Tel() = %q", got)
	}
	if got := External("Form", "https://forms.google.com"); !got.External {
		t.Error("External() link not marked external")
	}
}

func TestScrollRestorer(t *testing.T) {
	var s ScrollRestorer

	steps := []struct {
		name string
		loc  Location
		want ScrollAction
	}{
		{"first visit", Location{Path: "/"}, ScrollAction{Kind: ScrollTopInstant}},
		{"same path", Location{Path: "/"}, ScrollAction{Kind: ScrollTopSmooth}},
		{"new path", Location{Path: "/teachers"}, ScrollAction{Kind: ScrollTopInstant}},
		{"fragment", Location{Path: "/gallery", Fragment: "section-x"},
			ScrollAction{Kind: ScrollToElement, Target: "section-x", Delay: FragmentSettleDelay}},
		{"back to gallery without fragment", Location{Path: "/gallery"}, ScrollAction{Kind: ScrollTopSmooth}},
	}

	for _, st := range steps {
		if got := s.Observe(st.loc); got != st.want {
			t.Errorf("%s: Observe(%+v) = %+v, want %+v", st.name, st.loc, got, st.want)
		}
	}
}

func TestScrollRestorer_FragmentFromURL(t *testing.T) {
	u, err := url.Parse("/gallery#section-x")
	if err != nil {
		t.Fatal(err)
	}

	var s ScrollRestorer
	got := s.Observe(LocationOf(u))
	if got.Kind != ScrollToElement || got.Target != "section-x" {
		t.Errorf("Observe() = %+v, want ScrollToElement(section-x)", got)
	}
	if got.Delay != 100*time.Millisecond {
		t.Errorf("Delay = %v, want 100ms", got.Delay)
	}
}

func TestScrollOnArrival(t *testing.T) {
	parse := func(raw string) *url.URL {
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatal(err)
		}
		return u
	}

	tests := []struct {
		name     string
		previous *url.URL
		current  string
		want     ScrollKind
	}{
		{"unknown referrer", nil, "/about", ScrollTopInstant},
		{"from another page", parse("https://mirror.test/teachers"), "/about", ScrollTopInstant},
		{"same page again", parse("https://mirror.test/about?x=1"), "/about", ScrollTopSmooth},
		{"root", parse("https://mirror.test"), "/", ScrollTopSmooth},
	}
	for _, tt := range tests {
		if got := ScrollOnArrival(tt.previous, parse(tt.current)); got.Kind != tt.want {
			t.Errorf("%s: ScrollOnArrival() = %+v, want %s", tt.name, got, tt.want)
		}
	}
}
