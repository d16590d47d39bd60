// Package htmlsanitize sanitizes rendered markdown before it is placed
// into a page. It uses bluemonday to strip dangerous HTML while keeping
// the formatting the markdown renderer emits.
package htmlsanitize

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// UGC policy covers everything the markdown renderer produces:
		// headings, paragraphs, lists, blockquotes, code, links, images.
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// Sanitize cleans an HTML fragment, removing dangerous elements and
// attributes while preserving safe formatting.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeToHTML sanitizes a fragment and returns it as template.HTML,
// safe to render directly in Go templates without escaping.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}
