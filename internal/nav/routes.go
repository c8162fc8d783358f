// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav holds the site's route table, navigation menus, outbound links
// and scroll-restoration rules.
package nav

import (
	"net/url"
	"strings"
)

// Route paths.
const (
	PathHome        = "/"
	PathInstruments = "/instruments"
	PathSinging     = "/singing"
	PathDancing     = "/dancing"
	PathArt         = "/art"
	PathTeachers    = "/teachers"
	PathGallery     = "/gallery"
	PathBookUs      = "/book-us"
	PathAbout       = "/about"
	PathEnroll      = "/enroll"
)

// FallbackPath is where unmatched paths are redirected.
const FallbackPath = PathHome

// Route is one page of the site.
type Route struct {
	Path  string
	Name  string // template name
	Title string
}

// Routes lists every page in sitemap order.
var Routes = []Route{
	{Path: PathHome, Name: "home", Title: "Home"},
	{Path: PathInstruments, Name: "subject", Title: "Musical Instruments"},
	{Path: PathSinging, Name: "subject", Title: "Singing"},
	{Path: PathDancing, Name: "subject", Title: "Dancing"},
	{Path: PathArt, Name: "subject", Title: "Art"},
	{Path: PathTeachers, Name: "teachers", Title: "Our Teachers"},
	{Path: PathGallery, Name: "gallery", Title: "Gallery"},
	{Path: PathBookUs, Name: "book_us", Title: "Book Us"},
	{Path: PathAbout, Name: "about", Title: "About Us"},
	{Path: PathEnroll, Name: "enroll", Title: "Enroll"},
}

// Lookup returns the route registered for path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Resolve returns the path to serve for a request path: the path itself
// when it names a route, FallbackPath otherwise. A single trailing slash is
// ignored.
func Resolve(path string) (string, bool) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if _, ok := Lookup(path); ok {
		return path, true
	}
	return FallbackPath, false
}

// Link is a labelled navigation target.
type Link struct {
	Label    string
	Href     string
	External bool // opens in a new browsing context
}

// Subjects is the subjects dropdown in the header.
var Subjects = []Link{
	{Label: "Musical Instruments", Href: PathInstruments},
	{Label: "Singing", Href: PathSinging},
	{Label: "Dancing", Href: PathDancing},
	{Label: "Art", Href: PathArt},
}

// HeaderLinks follow the subjects dropdown in the header.
var HeaderLinks = []Link{
	{Label: "Teachers", Href: PathTeachers},
	{Label: "Gallery", Href: PathGallery},
	{Label: "Book Us", Href: PathBookUs},
	{Label: "About Us", Href: PathAbout},
}

// QuickLinks is the footer link list.
var QuickLinks = []Link{
	{Label: "Home", Href: PathHome},
	{Label: "Musical Instruments", Href: PathInstruments},
	{Label: "Singing", Href: PathSinging},
	{Label: "Dancing", Href: PathDancing},
	{Label: "Art", Href: PathArt},
	{Label: "Teachers", Href: PathTeachers},
	{Label: "Gallery", Href: PathGallery},
	{Label: "Book Us", Href: PathBookUs},
	{Label: "About Us", Href: PathAbout},
}

// SocialLinks are shown in the footer.
var SocialLinks = []Link{
	{Label: "Facebook", Href: "https://facebook.com", External: true},
	{Label: "Instagram", Href: "https://instagram.com", External: true},
	{Label: "YouTube", Href: "https://youtube.com", External: true},
	{Label: "Twitter", Href: "https://twitter.com", External: true},
}

// IsActive reports whether link href is the current page. Subject pages also
// activate the subjects dropdown through IsSubjectPath.
func IsActive(href, current string) bool {
	return href == current
}

// IsSubjectPath reports whether path is one of the subject pages.
func IsSubjectPath(path string) bool {
	for _, s := range Subjects {
		if s.Href == path {
			return true
		}
	}
	return false
}

// MailTo returns a mailto: URI for address.
func MailTo(address string) string {
	return (&url.URL{Scheme: "mailto", Opaque: address}).String()
}

// Tel returns a tel: URI for a phone number, dropping formatting characters.
func Tel(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return "tel:" + b.String()
}

// External returns a link that opens in a new browsing context.
func External(label, href string) Link {
	return Link{Label: label, Href: href, External: true}
}
