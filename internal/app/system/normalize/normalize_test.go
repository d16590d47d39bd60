package normalize

import (
	"reflect"
	"testing"
)

func TestEmail(t *testing.T) {
	if got := Email("  Ada@Example.COM "); got != "ada@example.com" {
		t.Errorf("Email() = %q", got)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my photo.png", "my-photo.png"},
		{"  spaced   out  file.jpg ", "spaced-out-file.jpg"},
		{"already-clean.png", "already-clean.png"},
		{"tabs\tand\nnewlines.gif", "tabs-and-newlines.gif"},
	}
	for _, tt := range tests {
		if got := Filename(tt.in); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTags(t *testing.T) {
	got := Tags("remote work, jeju , , community")
	want := []string{"remote work", "jeju", "community"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}

	if got := Tags(""); got != nil {
		t.Errorf("Tags(\"\") = %v, want nil", got)
	}
}

func TestSlug(t *testing.T) {
	if got := Slug(" My-Post "); got != "my-post" {
		t.Errorf("Slug() = %q", got)
	}
}
