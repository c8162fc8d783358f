// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"time"
)

// SecurityTxt holds the fields of /.well-known/security.txt (RFC 9116).
type SecurityTxt struct {
	// Contact lists URIs for reporting issues, such as "mailto:info@example.com".
	Contact []string
	// Expires defaults to one year after Now when zero.
	Expires            time.Time
	Canonical          string
	PreferredLanguages string
}

// Build renders the file. now is used for the default expiry.
func (s SecurityTxt) Build(now time.Time) string {
	var sb strings.Builder
	field := func(name, value string) {
		if value == "" {
			return
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	for _, c := range s.Contact {
		field("Contact", c)
	}
	expires := s.Expires
	if expires.IsZero() {
		expires = now.AddDate(1, 0, 0)
	}
	field("Expires", expires.UTC().Format(time.RFC3339))
	field("Preferred-Languages", s.PreferredLanguages)
	field("Canonical", s.Canonical)
	return sb.String()
}
