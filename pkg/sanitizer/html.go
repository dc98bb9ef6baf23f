package sanitizer

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// allowedElements is the complete set of tags that may appear in sanitized
// output. No attributes are permitted on any of them.
var allowedElements = []string{
	"p", "br", "strong", "em", "ul", "ol", "li",
	"h1", "h2", "h3", "h4", "h5", "h6",
}

var (
	// markdown renders with raw HTML passthrough so that embedded HTML in
	// the input reaches the allow-list filter instead of being escaped into
	// visible text. The filter below is the single enforcement point.
	markdown = goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedElements...)
	return p
}

// ToSafeHTML converts loosely-formatted text (Markdown or raw HTML) into a
// constrained HTML subset. Disallowed elements are stripped with their text
// content retained, except script/style-like elements whose content is
// dropped entirely. The function is total: it always returns a sanitized
// string, falling back to filtering the raw input if markup expansion fails.
func ToSafeHTML(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return strings.TrimSpace(policy.Sanitize(text))
	}
	return strings.TrimSpace(policy.Sanitize(buf.String()))
}
