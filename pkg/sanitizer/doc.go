// Package sanitizer provides the content pipeline applied to article input
// before it is sent to Joomla.
//
// All functions are pure and total - they never fail and applying them twice
// to their own output produces the same result.
//
//   - GenerateAlias derives a URL-safe slug from an article title.
//   - ToSafeHTML expands lightweight markup into HTML and filters it through
//     a strict allow-list. This is a security filter, not a best-effort
//     cleanup: unknown elements are stripped and no attribute of any kind
//     survives, so input that is already HTML has no bypass path.
package sanitizer
