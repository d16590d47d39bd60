package adminposts

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	posts "github.com/bnomad/website/internal/app/store/posts"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/bnomad/website/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *posts.Store, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)
	h := NewHandler(db, errorsfeature.NewHandler(), errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, posts.New(db), db
}

func postAdminForm(t *testing.T, h *Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"title_en":   {"A new program"},
		"title_ko":   {"새 프로그램"},
		"slug":       {"A New Program"},
		"excerpt_en": {"Short summary."},
		"content_en": {"## Details\n\nEverything you need to know."},
		"content_ko": {"## 상세\n\n알아야 할 모든 것."},
		"category":   {models.CategoryJourney},
		"tags":       {"programs, jeju"},
		"published":  {"on"},
	}
}

func TestListDegradesWhenDatabaseUnavailable(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler(testutil.UnreachableDB(t), errorsfeature.NewHandler(), errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "No posts yet") {
		t.Errorf("body missing empty state")
	}
}

func TestListIncludesDrafts(t *testing.T) {
	h, store, _ := newTestHandler(t)
	_, err := store.Create(testutil.TestContext(t), posts.CreateInput{
		Title:    models.Translated{EN: "Hidden draft"},
		Content:  models.Translated{EN: "Body"},
		Slug:     "hidden-draft",
		Category: models.CategoryInsights,
	}, "Admin", "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Hidden draft") {
		t.Errorf("body missing draft post")
	}
	if !strings.Contains(body, `class="badge draft"`) {
		t.Errorf("body missing draft badge")
	}
}

func TestCreatePost(t *testing.T) {
	h, store, _ := newTestHandler(t)

	rec := postAdminForm(t, h, "/", validForm())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d, body: %.300s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/en/admin/posts" {
		t.Errorf("Location = %q, want %q", loc, "/en/admin/posts")
	}

	post, err := store.GetBySlug(testutil.TestContext(t), "a-new-program")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if post == nil {
		t.Fatal("post was not created")
	}
	if post.Author.Email != testutil.AdminUser().Email {
		t.Errorf("Author.Email = %q, want session user", post.Author.Email)
	}
	if post.PublishedAt == nil {
		t.Errorf("PublishedAt is nil for a post created published")
	}
	if len(post.Tags) != 2 || post.Tags[0] != "programs" {
		t.Errorf("Tags = %v, want parsed list", post.Tags)
	}
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	h, store, _ := newTestHandler(t)

	form := validForm()
	form.Del("title_en")
	rec := postAdminForm(t, h, "/", form)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "English title is required") {
		t.Errorf("body missing validation error")
	}

	count, err := store.Count(testutil.TestContext(t), bson.M{})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	h, _, _ := newTestHandler(t)

	if rec := postAdminForm(t, h, "/", validForm()); rec.Code != http.StatusSeeOther {
		t.Fatalf("first create status = %d", rec.Code)
	}
	rec := postAdminForm(t, h, "/", validForm())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "A post with this slug already exists") {
		t.Errorf("body missing duplicate slug error")
	}
}

func TestEditFormPrefills(t *testing.T) {
	h, store, _ := newTestHandler(t)
	created, err := store.Create(testutil.TestContext(t), posts.CreateInput{
		Title:    models.Translated{EN: "Editable", KO: "수정 가능"},
		Content:  models.Translated{EN: "Body text"},
		Slug:     "editable",
		Category: models.CategoryReflections,
		Tags:     []string{"alpha", "beta"},
	}, "Admin", "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/"+created.ID.Hex()+"/edit", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{`value="Editable"`, `value="수정 가능"`, `value="editable"`, "alpha, beta"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestUpdatePost(t *testing.T) {
	h, store, _ := newTestHandler(t)
	created, err := store.Create(testutil.TestContext(t), posts.CreateInput{
		Title:    models.Translated{EN: "Before"},
		Content:  models.Translated{EN: "Old body"},
		Slug:     "before",
		Category: models.CategoryJourney,
	}, "Admin", "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	form := validForm()
	form.Set("title_en", "After")
	form.Set("slug", "after")
	rec := postAdminForm(t, h, "/"+created.ID.Hex(), form)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d, body: %.300s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	post, err := store.GetByID(testutil.TestContext(t), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if post.Title.EN != "After" {
		t.Errorf("Title.EN = %q, want %q", post.Title.EN, "After")
	}
	if post.Slug != "after" {
		t.Errorf("Slug = %q, want %q", post.Slug, "after")
	}
	if !post.Published || post.PublishedAt == nil {
		t.Errorf("post not published with backfilled date")
	}
}

func TestDeletePost(t *testing.T) {
	h, store, _ := newTestHandler(t)
	created, err := store.Create(testutil.TestContext(t), posts.CreateInput{
		Title:    models.Translated{EN: "Doomed"},
		Content:  models.Translated{EN: "Body"},
		Slug:     "doomed",
		Category: models.CategoryJourney,
	}, "Admin", "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rec := postAdminForm(t, h, "/"+created.ID.Hex()+"/delete", url.Values{})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	post, err := store.GetBySlug(testutil.TestContext(t), "doomed")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if post != nil {
		t.Errorf("post still exists after delete")
	}
}

func TestBadIDReturnsNotFound(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/not-a-hex-id/edit", testutil.AdminUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
