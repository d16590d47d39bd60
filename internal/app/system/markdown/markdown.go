// Package markdown renders blog post markdown to HTML.
//
// It is a deliberately small line-based renderer covering the subset the
// editor produces: headings, paragraphs, unordered and ordered lists,
// blockquotes, fenced code blocks, horizontal rules, and inline
// bold/italic/code/links/images. Output is sanitized by the caller
// before rendering into a page.
package markdown

import (
	"bytes"
	"html"
	"regexp"
	"strings"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reImage      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s+`)
)

// Render converts md to an HTML fragment.
func Render(md string) string {
	var buf bytes.Buffer

	inPara := false
	inList := false
	inOrdered := false
	inQuote := false
	inCode := false

	flushPara := func() {
		if inPara {
			buf.WriteString("</p>\n")
			inPara = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>\n")
			inList = false
		}
		if inOrdered {
			buf.WriteString("</ol>\n")
			inOrdered = false
		}
	}
	flushQuote := func() {
		if inQuote {
			buf.WriteString("</blockquote>\n")
			inQuote = false
		}
	}
	flushBlocks := func() {
		flushPara()
		flushList()
		flushQuote()
	}

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				buf.WriteString("</code></pre>\n")
				inCode = false
			} else {
				flushBlocks()
				buf.WriteString("<pre><code>")
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flushBlocks()
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "###"):
			flushBlocks()
			buf.WriteString("<h3>")
			buf.WriteString(formatInline(strings.TrimSpace(strings.TrimPrefix(trimmed, "###"))))
			buf.WriteString("</h3>\n")
		case strings.HasPrefix(trimmed, "##"):
			flushBlocks()
			buf.WriteString("<h2>")
			buf.WriteString(formatInline(strings.TrimSpace(strings.TrimPrefix(trimmed, "##"))))
			buf.WriteString("</h2>\n")
		case strings.HasPrefix(trimmed, "#"):
			flushBlocks()
			buf.WriteString("<h1>")
			buf.WriteString(formatInline(strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))))
			buf.WriteString("</h1>\n")
		case trimmed == "---" || trimmed == "***":
			flushBlocks()
			buf.WriteString("<hr/>\n")
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			flushPara()
			flushQuote()
			if inOrdered {
				buf.WriteString("</ol>\n")
				inOrdered = false
			}
			if !inList {
				buf.WriteString("<ul>\n")
				inList = true
			}
			buf.WriteString("<li>")
			buf.WriteString(formatInline(trimmed[2:]))
			buf.WriteString("</li>\n")
		case reOrdered.MatchString(trimmed):
			flushPara()
			flushQuote()
			if inList {
				buf.WriteString("</ul>\n")
				inList = false
			}
			if !inOrdered {
				buf.WriteString("<ol>\n")
				inOrdered = true
			}
			buf.WriteString("<li>")
			buf.WriteString(formatInline(reOrdered.ReplaceAllString(trimmed, "")))
			buf.WriteString("</li>\n")
		case strings.HasPrefix(trimmed, "> "):
			flushPara()
			flushList()
			if !inQuote {
				buf.WriteString("<blockquote>\n")
				inQuote = true
			}
			buf.WriteString(formatInline(trimmed[2:]))
			buf.WriteString("\n")
		default:
			flushList()
			flushQuote()
			if inPara {
				buf.WriteString(" ")
			} else {
				buf.WriteString("<p>")
				inPara = true
			}
			buf.WriteString(formatInline(trimmed))
		}
	}

	if inCode {
		buf.WriteString("</code></pre>\n")
	}
	flushPara()
	flushList()
	flushQuote()

	return buf.String()
}

// formatInline escapes text and applies inline markdown formatting.
// Images are handled before links so ![alt](url) is not matched as a link.
func formatInline(s string) string {
	out := html.EscapeString(s)
	out = reImage.ReplaceAllString(out, `<img src="$2" alt="$1"/>`)
	out = reLink.ReplaceAllString(out, `<a href="$2">$1</a>`)
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")
	out = reInlineCode.ReplaceAllString(out, "<code>$1</code>")
	return out
}
