// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site builds the view models rendered by each page of the website.
//
// A Site reads content through a content.Source, loading the sections of a
// page concurrently, and combines the records with the fixed copy of each
// page. Handlers pass the result straight to the theme templates.
package site

import (
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/olegiv/mirror-creative/internal/content"
	"github.com/olegiv/mirror-creative/internal/nav"
	"github.com/olegiv/mirror-creative/internal/seo"
	"github.com/olegiv/mirror-creative/internal/slides"
	"github.com/olegiv/mirror-creative/internal/uikit"
)

const (
	// logoPath is the site logo, also used as the fallback share image.
	logoPath = "/static/img/favicon.svg"

	metaDescriptionLen = 160
)

// Settings are the site-wide values that come from configuration.
type Settings struct {
	Name              string
	URL               string
	Description       string
	ContactEmail      string
	ContactPhone      string
	BookingFormURL    string
	EnrollmentFormURL string
}

// DefaultSettings returns the settings used when configuration leaves them empty.
func DefaultSettings() Settings {
	return Settings{
		Name:              "Mirror Creative Institute",
		URL:               "http://localhost:8080",
		Description:       "Unleashing creativity and nurturing talent across musical instruments, singing, dancing, and art.",
		ContactEmail:      "info@mirrorcreative.com",
		ContactPhone:      "+1234567890",
		BookingFormURL:    "https://forms.google.com",
		EnrollmentFormURL: "https://forms.google.com",
	}
}

// Site builds page view models.
type Site struct {
	settings Settings
	src      content.Source
	rotator  *slides.Rotator
	logger   *slog.Logger
	now      func() time.Time
	org      seo.Organization
}

// Option configures a Site.
type Option func(*Site)

// WithRotator sets the process-wide hero slide rotator.
func WithRotator(r *slides.Rotator) Option {
	return func(s *Site) { s.rotator = r }
}

// WithClock replaces time.Now, used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// New creates a Site reading from src.
func New(settings Settings, src content.Source, logger *slog.Logger, opts ...Option) *Site {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Site{
		settings: settings,
		src:      src,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	social := make([]string, len(nav.SocialLinks))
	for i, l := range nav.SocialLinks {
		social[i] = l.Href
	}
	s.org = seo.Organization{
		Name:        settings.Name,
		URL:         settings.URL,
		Description: settings.Description,
		Logo:        logoPath,
		Email:       settings.ContactEmail,
		Telephone:   settings.ContactPhone,
		SameAs:      social,
	}
	return s
}

// Settings returns the site settings.
func (s *Site) Settings() Settings { return s.settings }

// MenuItem is a navigation entry with its active state resolved.
type MenuItem struct {
	Title    string
	URL      string
	IsActive bool
}

// Base holds the fields every page template expects.
type Base struct {
	// SEO meta
	Title           string
	MetaDescription string
	Canonical       string
	OGImage         string
	StructuredData  template.JS

	// Site info
	SiteName    string
	SiteURL     string
	CurrentPath string
	Year        int

	// Header
	Subjects       []MenuItem
	SubjectsActive bool
	Navigation     []MenuItem

	// Footer
	QuickLinks   []MenuItem
	SocialLinks  []nav.Link
	FooterText   string
	Copyright    string
	Email        string
	EmailHref    string
	Phone        string
	PhoneHref    string
	BookingURL   string
	EnrollingURL string

	// Client behaviour
	ReducedMotion   bool
	Scroll          nav.ScrollKind
	ScrollSettleMS  int64
	SlideIntervalMS int64
}

// SetReducedMotion marks the page for clients that asked for less motion.
func (b *Base) SetReducedMotion(v bool) { b.ReducedMotion = v }

// SetScroll records how the client should scroll once the page loads.
func (b *Base) SetScroll(a nav.ScrollAction) { b.Scroll = a.Kind }

func menu(links []nav.Link, current string) []MenuItem {
	items := make([]MenuItem, len(links))
	for i, l := range links {
		items[i] = MenuItem{Title: l.Label, URL: l.Href, IsActive: nav.IsActive(l.Href, current)}
	}
	return items
}

// base fills the shared template fields for the page at path.
func (s *Site) base(path string) Base {
	title := s.settings.Name
	trail := []seo.Crumb{{Name: "Home", URL: nav.PathHome}}
	if r, ok := nav.Lookup(path); ok && r.Path != nav.PathHome {
		title = r.Title + " | " + s.settings.Name
		trail = append(trail, seo.Crumb{Name: r.Title, URL: r.Path})
	}
	year := s.now().Year()

	return Base{
		Title:           title,
		MetaDescription: uikit.Excerpt(s.settings.Description, metaDescriptionLen),
		Canonical:       s.settings.URL + path,
		OGImage:         seo.AbsoluteURL(logoPath, s.settings.URL),
		StructuredData:  seo.StructuredData(s.org, trail),
		SiteName:        s.settings.Name,
		SiteURL:         s.settings.URL,
		CurrentPath:     path,
		Year:            year,
		Subjects:        menu(nav.Subjects, path),
		SubjectsActive:  nav.IsSubjectPath(path),
		Navigation:      menu(nav.HeaderLinks, path),
		QuickLinks:      menu(nav.QuickLinks, path),
		SocialLinks:     nav.SocialLinks,
		FooterText:      s.settings.Description,
		Copyright:       copyright(year, s.settings.Name),
		Email:           s.settings.ContactEmail,
		EmailHref:       nav.MailTo(s.settings.ContactEmail),
		Phone:           FormatPhone(s.settings.ContactPhone),
		PhoneHref:       nav.Tel(s.settings.ContactPhone),
		BookingURL:      s.settings.BookingFormURL,
		EnrollingURL:    s.settings.EnrollmentFormURL,
		Scroll:          nav.ScrollTopInstant,
		ScrollSettleMS:  nav.FragmentSettleDelay.Milliseconds(),
		SlideIntervalMS: slides.DefaultInterval.Milliseconds(),
	}
}

func copyright(year int, name string) string {
	return fmt.Sprintf("© %d %s. All rights reserved.", year, name)
}

// FormatPhone renders an 11-digit North American number as "+1 (234) 567-890"
// style: country code, three-digit area code, then the rest split 3 and the
// remainder. Numbers in other shapes are returned unchanged.
func FormatPhone(phone string) string {
	digits := nav.Tel(phone)[len("tel:"):]
	if len(digits) < 9 || digits[0] != '+' || digits[1] != '1' {
		return phone
	}
	rest := digits[2:]
	return "+1 (" + rest[:3] + ") " + rest[3:6] + "-" + rest[6:]
}
