package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize_RemovesScript(t *testing.T) {
	out := Sanitize(`<p>hello</p><script>alert(1)</script>`)
	if strings.Contains(out, "script") {
		t.Errorf("script tag not removed: %q", out)
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Errorf("safe markup removed: %q", out)
	}
}

func TestSanitize_KeepsMarkdownOutput(t *testing.T) {
	in := `<h2>Title</h2><ul><li><strong>bold</strong></li></ul><blockquote>q</blockquote><pre><code>x</code></pre>`
	out := Sanitize(in)
	for _, want := range []string{"<h2>", "<ul>", "<strong>", "<blockquote>", "<pre>", "<code>"} {
		if !strings.Contains(out, want) {
			t.Errorf("sanitizer stripped %q: %q", want, out)
		}
	}
}

func TestSanitize_Empty(t *testing.T) {
	if out := Sanitize(""); out != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", out)
	}
}

func TestSanitize_RemovesEventHandlers(t *testing.T) {
	out := Sanitize(`<a href="https://example.com" onclick="evil()">link</a>`)
	if strings.Contains(out, "onclick") {
		t.Errorf("event handler not removed: %q", out)
	}
	if !strings.Contains(out, "link") {
		t.Errorf("link text removed: %q", out)
	}
}
