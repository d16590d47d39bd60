package admincontacts

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	contactstore "github.com/bnomad/website/internal/app/store/contacts"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/bnomad/website/internal/testutil"
	"go.uber.org/zap"
)

func TestListShowsSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)
	ctx := testutil.TestContext(t)

	store := contactstore.New(db)
	for _, sub := range []models.ContactSubmission{
		{Name: "Jamie Park", Email: "jamie@example.com", Subject: "Partnership", Message: "Let's talk.", Lang: "en"},
		{Name: "김하늘", Email: "haneul@example.com", Message: "안녕하세요", Lang: "ko"},
	} {
		if _, err := store.Create(ctx, sub); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	h := NewHandler(db, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"Jamie Park", "jamie@example.com", "Partnership", "김하늘", "안녕하세요"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestListPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)
	ctx := testutil.TestContext(t)

	store := contactstore.New(db)
	for i := 0; i < pageSize+5; i++ {
		sub := models.ContactSubmission{
			Name:    "Visitor",
			Email:   "visitor@example.com",
			Message: "hello",
			Lang:    "en",
		}
		if _, err := store.Create(ctx, sub); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	h := NewHandler(db, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "?page=2") {
		t.Errorf("first page missing link to page 2")
	}
	if strings.Contains(body, "?page=0") {
		t.Errorf("first page should not link to a previous page")
	}

	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/?page=2", testutil.AdminUser())
	rec = httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	body = rec.Body.String()
	if !strings.Contains(body, "?page=1") {
		t.Errorf("second page missing link back to page 1")
	}
	if strings.Contains(body, "?page=3") {
		t.Errorf("second page should be the last page")
	}
}

func TestListDegradesWhenDatabaseUnavailable(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler(testutil.UnreachableDB(t), errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "No messages yet") {
		t.Errorf("body missing empty state")
	}
}

func TestListEmptyState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)

	h := NewHandler(db, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "No messages yet") {
		t.Errorf("body missing empty state")
	}
}
