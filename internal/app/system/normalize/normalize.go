// Package normalize provides helper functions for consistent string
// normalization across the application. Use these helpers instead of
// scattered strings.ToLower and strings.TrimSpace calls.
package normalize

import "strings"

// Email normalizes an email address by trimming whitespace and converting
// to lowercase. This is the canonical way to normalize emails before
// storage or comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a display name by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Slug normalizes a post slug: trimmed, lowercase.
func Slug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Category normalizes a category value by trimming whitespace and
// converting to lowercase.
func Category(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Filename collapses all runs of whitespace in a filename to single
// hyphens. Used when deriving storage names for uploaded media.
func Filename(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), "-")
}

// Tags splits a comma-separated tag list into trimmed, non-empty tags,
// preserving order.
func Tags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
