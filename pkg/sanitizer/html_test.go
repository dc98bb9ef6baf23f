package sanitizer

import (
	"regexp"
	"strings"
	"testing"
)

func TestToSafeHTML_Markdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "bold and italic",
			input:    "**bold** and *italic*",
			contains: []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:     "heading",
			input:    "# Title\n\nbody text",
			contains: []string{"<h1>Title</h1>", "<p>body text</p>"},
		},
		{
			name:     "unordered list",
			input:    "- one\n- two",
			contains: []string{"<ul>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:     "ordered list",
			input:    "1. first\n2. second",
			contains: []string{"<ol>", "<li>first</li>", "<li>second</li>"},
		},
		{
			name:     "script element removed",
			input:    "**bold** <script>alert(1)</script>",
			contains: []string{"<strong>bold</strong>"},
			absent:   []string{"<script>", "alert(1)"},
		},
		{
			name:     "link stripped to text",
			input:    `click <a href="https://evil.example/">here</a>`,
			contains: []string{"here"},
			absent:   []string{"<a", "href"},
		},
		{
			name:     "event handler attribute removed",
			input:    `<p onclick="alert(1)">hi</p>`,
			contains: []string{"<p>hi</p>"},
			absent:   []string{"onclick"},
		},
		{
			name:     "image removed",
			input:    `<img src="x" onerror="alert(1)">text`,
			contains: []string{"text"},
			absent:   []string{"<img", "src", "onerror"},
		},
		{
			name:     "already-HTML input still filtered",
			input:    `<div style="color:red"><strong>kept</strong></div>`,
			contains: []string{"<strong>kept</strong>"},
			absent:   []string{"<div", "style"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSafeHTML(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToSafeHTML(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("ToSafeHTML(%q) = %q, must not contain %q", tt.input, got, bad)
				}
			}
		})
	}
}

func TestToSafeHTML_Empty(t *testing.T) {
	if got := ToSafeHTML(""); got != "" {
		t.Errorf("ToSafeHTML(\"\") = %q, want empty string", got)
	}
}

var reTag = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)[^>]*>`)

func TestToSafeHTML_AllowListProperty(t *testing.T) {
	allowed := map[string]bool{}
	for _, el := range allowedElements {
		allowed[el] = true
	}

	inputs := []string{
		"# Heading\n\n**bold** *em*\n\n- a\n- b",
		`<script src="x.js"></script><style>p{}</style><iframe src="x"></iframe>`,
		`<table><tr><td onclick="x()">cell</td></tr></table>`,
		`<p class="big" id="p1" data-x="1">attrs must go</p>`,
		`plain text with <b>legacy bold</b> and <span>span</span>`,
		"[link](javascript:alert(1))",
	}

	for _, in := range inputs {
		got := ToSafeHTML(in)
		for _, m := range reTag.FindAllStringSubmatch(got, -1) {
			tag := strings.ToLower(m[1])
			if !allowed[tag] {
				t.Errorf("ToSafeHTML(%q) produced disallowed element <%s>: %q", in, tag, got)
			}
			if strings.Contains(m[0], "=") {
				t.Errorf("ToSafeHTML(%q) produced an attribute in %q", in, m[0])
			}
		}
	}
}
