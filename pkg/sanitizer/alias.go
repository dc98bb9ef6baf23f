package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reHyphens    = regexp.MustCompile(`-+`)
)

var aliasPipeline = Pipeline{
	strings.ToLower,
	func(s string) string { return reDisallowed.ReplaceAllString(s, "") },
	func(s string) string { return reWhitespace.ReplaceAllString(s, "-") },
	func(s string) string { return reHyphens.ReplaceAllString(s, "-") },
	func(s string) string { return strings.Trim(s, "-") },
}

// GenerateAlias converts a title into a URL-safe alias: lowercase, only
// [a-z0-9-], whitespace runs collapsed to a single hyphen, no leading or
// trailing hyphen. Empty or all-punctuation input yields an empty string,
// which callers must treat as a valid degenerate result.
func GenerateAlias(title string) string {
	return aliasPipeline.Apply(title)
}
