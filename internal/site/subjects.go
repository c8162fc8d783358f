// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"context"
	"net/url"
	"strings"

	"github.com/olegiv/mirror-creative/internal/model"
	"github.com/olegiv/mirror-creative/internal/nav"
)

// SubjectPage is the fixed copy and matching rules of one subject page.
type SubjectPage struct {
	Path        string
	Category    string
	Heading     string
	Intro       string
	Quote       string
	QuoteAuthor string
	// Keywords select the styles shown on the page by case-insensitive
	// substring match on the style name.
	Keywords []string
}

// SubjectPages lists the four subject pages.
var SubjectPages = []SubjectPage{
	{
		Path:        nav.PathInstruments,
		Category:    "instruments",
		Heading:     "Play Your Passion",
		Intro:       "Master your favorite instrument with expert guidance. From first chords to concert stages, every musician starts here.",
		Quote:       "Music gives a soul to the universe, wings to the mind, flight to the imagination.",
		QuoteAuthor: "Plato",
		Keywords:    []string{"guitar", "piano", "violin", "drum", "keyboard", "instrument"},
	},
	{
		Path:        nav.PathSinging,
		Category:    "singing",
		Heading:     "Find Your Voice",
		Intro:       "Find your voice and express yourself through song. Build technique, range and confidence with every lesson.",
		Quote:       "Where words fail, music speaks.",
		QuoteAuthor: "Hans Christian Andersen",
		Keywords:    []string{"vocal", "sing", "choir", "voice"},
	},
	{
		Path:        nav.PathDancing,
		Category:    "dancing",
		Heading:     "Move With Purpose",
		Intro:       "Move with grace and rhythm across various styles. Strength, timing and expression come together on our studio floor.",
		Quote:       "Dance is the hidden language of the soul.",
		QuoteAuthor: "Martha Graham",
		Keywords:    []string{"dance", "ballet", "hip hop", "contemporary", "salsa"},
	},
	{
		Path:        nav.PathArt,
		Category:    "art",
		Heading:     "Create Your Vision",
		Intro:       "Explore visual creativity through diverse mediums. From traditional to digital, bring your imagination to life.",
		Quote:       "Every artist was first an amateur.",
		QuoteAuthor: "Ralph Waldo Emerson",
		Keywords:    []string{"art", "sketch", "paint", "digital"},
	},
}

// SubjectPageFor returns the subject page served at path.
func SubjectPageFor(path string) (SubjectPage, bool) {
	for _, p := range SubjectPages {
		if p.Path == path {
			return p, true
		}
	}
	return SubjectPage{}, false
}

// MatchesStyle reports whether a style named name belongs on the page.
func (p SubjectPage) MatchesStyle(name string) bool {
	name = strings.ToLower(name)
	for _, kw := range p.Keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// FilterSubjects returns the subjects whose category equals category,
// ignoring case, in their original order.
func FilterSubjects(subjects []model.CreativeSubject, category string) []model.CreativeSubject {
	out := make([]model.CreativeSubject, 0, len(subjects))
	for _, s := range subjects {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out
}

// FilterStyles returns the styles that belong on page p, in their original order.
func (p SubjectPage) FilterStyles(styles []model.SubjectStyle) []model.SubjectStyle {
	out := make([]model.SubjectStyle, 0, len(styles))
	for _, st := range styles {
		if p.MatchesStyle(st.Name) {
			out = append(out, st)
		}
	}
	return out
}

// StyleCard is a style tile with the link that opens its detail view.
type StyleCard struct {
	model.SubjectStyle
	URL string
}

// SubjectData is the view model of a subject page.
type SubjectData struct {
	Base
	Page     SubjectPage
	Subjects []model.CreativeSubject
	Styles   []StyleCard
	Selected *model.SubjectStyle
	CloseURL string
}

// Subject builds the subject page p. styleID names the style whose detail
// view is open; an id not shown on the page is ignored.
func (s *Site) Subject(ctx context.Context, p SubjectPage, styleID string) (*SubjectData, error) {
	d := &SubjectData{
		Base:     s.base(p.Path),
		Page:     p,
		CloseURL: p.Path,
	}

	var (
		subjects []model.CreativeSubject
		styles   []model.SubjectStyle
	)
	err := s.load(ctx,
		Fetch(&subjects, model.CollectionCreativeSubjects, 0, s.src.CreativeSubjects),
		Fetch(&styles, model.CollectionSubjectStyles, 0, s.src.SubjectStyles),
	)
	if err != nil {
		return nil, err
	}

	d.Subjects = FilterSubjects(subjects, p.Category)
	// A subject record may carry its own quote; the page attribution only
	// applies to the page's quote.
	for _, sub := range d.Subjects {
		if sub.FamousQuote != "" {
			if sub.FamousQuote != p.Quote {
				d.Page.Quote, d.Page.QuoteAuthor = sub.FamousQuote, ""
			}
			break
		}
	}

	for _, st := range p.FilterStyles(styles) {
		d.Styles = append(d.Styles, StyleCard{SubjectStyle: st, URL: p.Path + "?style=" + url.QueryEscape(st.ID)})
		if styleID != "" && st.ID == styleID {
			selected := st
			d.Selected = &selected
		}
	}
	return d, nil
}
