package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	userstore "github.com/bnomad/website/internal/app/store/users"
	"github.com/bnomad/website/internal/app/system/auth"
	"github.com/bnomad/website/internal/app/system/authutil"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/bnomad/website/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)

	sm, err := auth.NewSessionManager(testSessionKey, "bnomad_session", "", 0, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	h := NewHandler(db, sm, false, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, db
}

func seedUser(t *testing.T, db *mongo.Database, email, password, status string) {
	t.Helper()
	hash, err := authutil.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	_, err = userstore.New(db).Create(testutil.TestContext(t), models.User{
		Email:        email,
		DisplayName:  "Test Admin",
		PasswordHash: &hash,
		Status:       status,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func postLogin(t *testing.T, h *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestFormRenders(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/login?return=/en/admin/posts", nil)
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `value="/en/admin/posts"`) {
		t.Errorf("body missing return field")
	}
	if strings.Contains(rec.Body.String(), "Sign in with Google") {
		t.Errorf("Google button shown when disabled")
	}
}

func TestSubmitSuccess(t *testing.T) {
	h, db := newTestHandler(t)
	seedUser(t, db, "admin@example.com", "correct horse battery", models.StatusActive)

	rec := postLogin(t, h, url.Values{
		"email":    {"Admin@Example.com"},
		"password": {"correct horse battery"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/en/admin" {
		t.Errorf("Location = %q, want %q", loc, "/en/admin")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Errorf("no session cookie set")
	}
}

func TestSubmitHonorsReturn(t *testing.T) {
	h, db := newTestHandler(t)
	seedUser(t, db, "admin@example.com", "correct horse battery", models.StatusActive)

	rec := postLogin(t, h, url.Values{
		"email":    {"admin@example.com"},
		"password": {"correct horse battery"},
		"return":   {"/ko/admin/posts"},
	})

	if loc := rec.Header().Get("Location"); loc != "/ko/admin/posts" {
		t.Errorf("Location = %q, want %q", loc, "/ko/admin/posts")
	}
}

func TestSubmitRejectsOpenRedirect(t *testing.T) {
	h, db := newTestHandler(t)
	seedUser(t, db, "admin@example.com", "correct horse battery", models.StatusActive)

	rec := postLogin(t, h, url.Values{
		"email":    {"admin@example.com"},
		"password": {"correct horse battery"},
		"return":   {"//evil.example.com/phish"},
	})

	if loc := rec.Header().Get("Location"); loc != "/en/admin" {
		t.Errorf("Location = %q, want fallback %q", loc, "/en/admin")
	}
}

func TestSubmitRejections(t *testing.T) {
	h, db := newTestHandler(t)
	seedUser(t, db, "admin@example.com", "correct horse battery", models.StatusActive)
	seedUser(t, db, "disabled@example.com", "correct horse battery", models.StatusDisabled)

	cases := []struct {
		name string
		form url.Values
	}{
		{"wrong password", url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}},
		{"unknown email", url.Values{"email": {"nobody@example.com"}, "password": {"correct horse battery"}}},
		{"disabled account", url.Values{"email": {"disabled@example.com"}, "password": {"correct horse battery"}}},
		{"empty password", url.Values{"email": {"admin@example.com"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postLogin(t, h, tc.form)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if !strings.Contains(rec.Body.String(), invalidCredentialsMsg) {
				t.Errorf("body missing credentials error")
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Errorf("session cookie set on rejected login")
			}
		})
	}
}

func TestLogout(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/en" {
		t.Errorf("Location = %q, want %q", loc, "/en")
	}
}

func TestSafeReturn(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/en/admin/posts", "/en/admin/posts"},
		{"//evil.example.com", ""},
		{"https://evil.example.com", ""},
		{`/\evil`, ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := safeReturn(tc.in); got != tc.want {
			t.Errorf("safeReturn(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
