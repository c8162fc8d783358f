// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemap.xml, robots.txt, security.txt and JSON-LD
// structured data for the site.
package seo

import (
	"encoding/xml"
	"strconv"
	"time"
)

// Namespaces of the sitemap protocol and of Google's image extension.
const (
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	ImageNamespace   = "http://www.google.com/schemas/sitemap-image/1.1"
)

// ChangeFreq is a sitemap change frequency hint.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// Entry is a page to list in the sitemap. Priority is in [0,1]; zero omits
// the element. Image URLs may be site relative.
type Entry struct {
	Path       string
	ChangeFreq ChangeFreq
	Priority   float64
	LastMod    time.Time
	Images     []Image
}

// Image is an image shown on a page, for the image extension.
type Image struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

type urlset struct {
	XMLName    xml.Name `xml:"urlset"`
	XMLNS      string   `xml:"xmlns,attr"`
	XMLNSImage string   `xml:"xmlns:image,attr,omitempty"`
	URLs       []urlXML `xml:"url"`
}

type urlXML struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
	Images     []Image    `xml:"image:image"`
}

// BuildSitemap renders entries as absolute URLs under siteURL. The image
// namespace is declared only when some entry carries images.
func BuildSitemap(siteURL string, entries []Entry) ([]byte, error) {
	doc := urlset{XMLNS: SitemapNamespace, URLs: make([]urlXML, 0, len(entries))}
	for _, e := range entries {
		u := urlXML{Loc: AbsoluteURL(e.Path, siteURL), ChangeFreq: e.ChangeFreq}
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(min(e.Priority, 1), 'f', 1, 64)
		}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format(time.RFC3339)
		}
		for _, img := range e.Images {
			u.Images = append(u.Images, Image{Loc: AbsoluteURL(img.Loc, siteURL), Title: img.Title})
		}
		if len(u.Images) > 0 {
			doc.XMLNSImage = ImageNamespace
		}
		doc.URLs = append(doc.URLs, u)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
