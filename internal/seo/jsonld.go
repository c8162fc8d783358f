// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strings"
)

const schemaContext = "https://schema.org"

// Organization describes the school for JSON-LD structured data.
type Organization struct {
	Name        string
	URL         string
	Description string
	Logo        string
	Email       string
	Telephone   string
	SameAs      []string
}

// Crumb is one step of a page's breadcrumb trail. URL may be site relative.
type Crumb struct {
	Name string
	URL  string
}

type graph struct {
	Context string `json:"@context"`
	Graph   []any  `json:"@graph"`
}

type orgNode struct {
	Type        string     `json:"@type"`
	ID          string     `json:"@id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Logo        *imageNode `json:"logo,omitempty"`
	Email       string     `json:"email,omitempty"`
	Telephone   string     `json:"telephone,omitempty"`
	SameAs      []string   `json:"sameAs,omitempty"`
}

type imageNode struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type breadcrumbNode struct {
	Type  string         `json:"@type"`
	Items []listItemNode `json:"itemListElement"`
}

type listItemNode struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// OrganizationID is the @id other nodes use to reference the school.
func OrganizationID(siteURL string) string {
	return strings.TrimSuffix(siteURL, "/") + "/#organization"
}

// StructuredData renders the JSON-LD graph for one page: the school and,
// when the trail has more than one step, its breadcrumb list. The result
// is safe inside a <script type="application/ld+json"> element because
// encoding/json escapes <, > and &.
func StructuredData(org Organization, trail []Crumb) template.JS {
	nodes := []any{organizationNode(org)}
	if len(trail) > 1 {
		bc := breadcrumbNode{Type: "BreadcrumbList", Items: make([]listItemNode, len(trail))}
		for i, c := range trail {
			bc.Items[i] = listItemNode{Type: "ListItem", Position: i + 1, Name: c.Name, Item: AbsoluteURL(c.URL, org.URL)}
		}
		nodes = append(nodes, bc)
	}

	data, err := json.MarshalIndent(graph{Context: schemaContext, Graph: nodes}, "", "  ")
	if err != nil {
		return ""
	}
	return template.JS(data) //nolint:gosec // json.Marshal escapes <, > and &
}

func organizationNode(org Organization) orgNode {
	n := orgNode{
		Type:        "EducationalOrganization",
		ID:          OrganizationID(org.URL),
		Name:        org.Name,
		URL:         org.URL,
		Description: org.Description,
		Email:       org.Email,
		Telephone:   org.Telephone,
		SameAs:      org.SameAs,
	}
	if org.Logo != "" {
		n.Logo = &imageNode{Type: "ImageObject", URL: AbsoluteURL(org.Logo, org.URL)}
	}
	return n
}

// AbsoluteURL resolves a site relative ref against siteURL. Absolute refs
// and the empty string come back unchanged.
func AbsoluteURL(ref, siteURL string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	return strings.TrimSuffix(siteURL, "/") + "/" + strings.TrimPrefix(ref, "/")
}
