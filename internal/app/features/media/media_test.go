package media

import (
	"bytes"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	"github.com/bnomad/website/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	testutil.MustBootTemplates(t)

	dir := t.TempDir()
	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: dir,
		BaseURL:  "/uploads",
	})
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	return NewHandler(files, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop()), dir
}

// storedFiles lists the files under the storage directory, so tests
// can assert a rejected upload never reached the store.
func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			found = append(found, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("WalkDir() error = %v", err)
	}
	return found
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return testutil.WithUser(req, testutil.AdminUser())
}

func TestUploadStoresImage(t *testing.T) {
	h, dir := newTestHandler(t)

	req := multipartUpload(t, "Team Photo 2026.png", "image/png", []byte("pngbytes"))
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	recent := h.Recent()
	if len(recent) != 1 {
		t.Fatalf("len(recent) = %d, want 1", len(recent))
	}
	up := recent[0]
	if up.Name != "Team Photo 2026.png" {
		t.Errorf("Name = %q", up.Name)
	}
	if !strings.HasPrefix(up.Path, "media/") {
		t.Errorf("Path = %q, want media/ prefix", up.Path)
	}
	if strings.Contains(up.Path, " ") {
		t.Errorf("Path %q contains whitespace", up.Path)
	}
	if !strings.HasSuffix(up.Path, "-team-photo-2026.png") {
		t.Errorf("Path = %q, want normalized filename suffix", up.Path)
	}
	if up.ID == "" {
		t.Errorf("ID is empty")
	}
	if !strings.Contains(rec.Body.String(), up.URL) {
		t.Errorf("body missing uploaded URL")
	}
	if got := storedFiles(t, dir); len(got) != 1 {
		t.Errorf("stored files = %d, want 1", len(got))
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	h, dir := newTestHandler(t)

	req := multipartUpload(t, "notes.pdf", "application/pdf", []byte("%PDF-1.4"))
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Only image files can be uploaded") {
		t.Errorf("body missing content type error")
	}
	if len(h.Recent()) != 0 {
		t.Errorf("non-image was remembered as uploaded")
	}
	if got := storedFiles(t, dir); len(got) != 0 {
		t.Errorf("rejected upload wrote %d file(s) to storage", len(got))
	}
}

func TestUploadRejectsOversize(t *testing.T) {
	h, dir := newTestHandler(t)

	big := make([]byte, maxUploadSize+1)
	req := multipartUpload(t, "huge.png", "image/png", big)
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "too large") {
		t.Errorf("body missing size error")
	}
	if len(h.Recent()) != 0 {
		t.Errorf("oversize file was remembered as uploaded")
	}
	if got := storedFiles(t, dir); len(got) != 0 {
		t.Errorf("rejected upload wrote %d file(s) to storage", len(got))
	}
}

func TestUploadRequiresFile(t *testing.T) {
	h, dir := newTestHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "Please choose an image to upload") {
		t.Errorf("body missing missing-file error")
	}
	if got := storedFiles(t, dir); len(got) != 0 {
		t.Errorf("rejected upload wrote %d file(s) to storage", len(got))
	}
}

func TestRecentIsBounded(t *testing.T) {
	h, _ := newTestHandler(t)

	for i := 0; i < recentLimit+5; i++ {
		req := multipartUpload(t, "img.png", "image/png", []byte("x"))
		rec := httptest.NewRecorder()
		Routes(h).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("upload %d status = %d", i, rec.Code)
		}
	}
	if got := len(h.Recent()); got != recentLimit {
		t.Errorf("len(recent) = %d, want %d", got, recentLimit)
	}
}
