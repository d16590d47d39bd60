package pages

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/testutil"
	"go.uber.org/zap"
)

func TestStaticPages(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler(zap.NewNop())
	router := Routes(h)

	cases := []struct {
		path string
		want string
	}{
		{"/about", "About Us"},
		{"/programs", "Programs"},
		{"/projects", "Projects"},
		{"/team", "Team"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", tc.path, rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Errorf("GET %s body missing %q", tc.path, tc.want)
		}
	}
}

func TestProgramsListsCatalog(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/programs", nil)
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{"Spain Roadtrip", "Lab Tour", "Jeju House", "Popup Collaborations", "/en/programs/jeju-house"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestProgramDetail(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/programs/jeju-house", nil)
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"Jeju House", "1 month", "/en/contact?program=jeju-house"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestProgramDetailKorean(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/programs/lab-tour", nil)
	req = req.WithContext(i18n.WithLocale(req.Context(), i18n.LocaleKO))
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{"랩 투어", "서울", "/ko/contact?program=lab-tour"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestProgramDetailUnknownSlugRedirects(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/programs/no-such-program", nil)
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/en/programs" {
		t.Errorf("Location = %q, want /en/programs", got)
	}
}
