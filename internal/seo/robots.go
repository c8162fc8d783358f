// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

// privatePaths are machine endpoints crawlers have no use for.
var privatePaths = []string{"/api/", "/health", "/media/"}

// RobotsGroup is one User-agent block of robots.txt.
type RobotsGroup struct {
	UserAgent string
	Disallow  []string
	Allow     []string
}

// Robots is a robots.txt document.
type Robots struct {
	Groups   []RobotsGroup
	Sitemaps []string
}

// SiteRobots returns the robots.txt of the site. A site that is not
// indexable, such as a staging deployment, turns every crawler away and
// advertises no sitemap.
func SiteRobots(siteURL string, indexable bool) Robots {
	if !indexable {
		return Robots{Groups: []RobotsGroup{{UserAgent: "*", Disallow: []string{"/"}}}}
	}
	return Robots{
		Groups:   []RobotsGroup{{UserAgent: "*", Disallow: privatePaths, Allow: []string{"/"}}},
		Sitemaps: []string{strings.TrimSuffix(siteURL, "/") + "/sitemap.xml"},
	}
}

// Build renders the document. Groups are separated by a blank line.
func (r Robots) Build() string {
	var sb strings.Builder
	line := func(field, value string) {
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteByte('\n')
	}

	for i, g := range r.Groups {
		if i > 0 {
			sb.WriteByte('\n')
		}
		line("User-agent", g.UserAgent)
		for _, p := range g.Disallow {
			line("Disallow", p)
		}
		for _, p := range g.Allow {
			line("Allow", p)
		}
	}
	if len(r.Sitemaps) > 0 {
		sb.WriteByte('\n')
		for _, s := range r.Sitemaps {
			line("Sitemap", s)
		}
	}
	return sb.String()
}
