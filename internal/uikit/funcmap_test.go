// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"
)

func TestTemplateFuncs_Parse(t *testing.T) {
	const src = `{{initial " ana"}}|{{add 1 2}}|{{even 4}}|{{formatDate .When}}|{{isoDate .When}}|` +
		`{{anchor "style" "Oil Painting"}}|{{range repeat 3}}x{{end}}|{{excerpt "one two three" 7}}|` +
		`{{range paragraphs "a\n\nb"}}[{{.}}]{{end}}|{{markdown "**b**"}}`

	tmpl, err := template.New("t").Funcs(TemplateFuncs()).Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{"When": time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := "A|3|true|Mar 15, 2025|2025-03-15T00:00:00Z|style-oil-painting|xxx|one two…|[a][b]|<p><strong>b</strong></p>\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"  spaced   out\ntext ", 20, "spaced out text"},
		{"héllo wörld again", 13, "héllo wörld…"},
		{"abcdefghij", 4, "abcd…"},
		{"ab cdefghij", 6, "ab cde…"},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.in, tt.n); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestInitial(t *testing.T) {
	for in, want := range map[string]string{"maya": "M", "  élodie": "É", "": ""} {
		if got := Initial(in); got != want {
			t.Errorf("Initial(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMarkdown_Sanitises(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{
			name: "list",
			in:   "- Week 1: scales\n- Week 2: chords",
			want: []string{"<ul>", "<li>Week 1: scales</li>"},
		},
		{
			name:    "script dropped",
			in:      "hi <script>alert(1)</script>",
			notWant: []string{"<script", "alert(1)</script>"},
		},
		{
			name:    "javascript link dropped",
			in:      "[x](javascript:alert(1))",
			notWant: []string{"javascript:"},
		},
		{
			name: "external link opens in new context",
			in:   "[form](https://forms.google.com)",
			want: []string{`href="https://forms.google.com"`, `target="_blank"`, "noopener"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Markdown(tt.in))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Markdown(%q) = %q, want it to contain %q", tt.in, got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("Markdown(%q) = %q, must not contain %q", tt.in, got, nw)
				}
			}
		})
	}
}

func TestMarkdown_Empty(t *testing.T) {
	if got := Markdown(""); got != "" {
		t.Errorf("Markdown(\"\") = %q", got)
	}
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("one\r\n\r\ntwo\n\n\n\n  three  ")
	want := []string{"one", "two", "three"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Paragraphs() = %q, want %q", got, want)
	}
}

func TestFormatDate_Zero(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
}
