package home

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	posts "github.com/bnomad/website/internal/app/store/posts"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/bnomad/website/internal/testutil"
	"go.uber.org/zap"
)

func TestIndexShowsFeaturedPosts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)
	ctx := testutil.TestContext(t)

	store := posts.New(db)
	_, err := store.Create(ctx, posts.CreateInput{
		Title:     models.Translated{EN: "Nomad visas in 2026", KO: "2026 노마드 비자"},
		Excerpt:   models.Translated{EN: "What changed this year."},
		Content:   models.Translated{EN: "Full rundown."},
		Slug:      "nomad-visas-2026",
		Category:  models.CategoryInsights,
		Published: true,
		Featured:  true,
	}, "Admin", "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err = store.Create(ctx, posts.CreateInput{
		Title:     models.Translated{EN: "Draft feature"},
		Content:   models.Translated{EN: "Not yet."},
		Slug:      "draft-feature",
		Category:  models.CategoryInsights,
		Published: false,
		Featured:  true,
	}, "Admin", "admin@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	h := NewHandler(db, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/en", nil)
	rec := httptest.NewRecorder()
	h.Index(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Nomad visas in 2026") {
		t.Errorf("body missing featured post title")
	}
	if strings.Contains(body, "Draft feature") {
		t.Errorf("body contains unpublished post")
	}
	if !strings.Contains(body, "/en/blog/nomad-visas-2026") {
		t.Errorf("body missing link to featured post")
	}
}

func TestIndexDegradesWithoutPosts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)

	h := NewHandler(db, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/en", nil)
	rec := httptest.NewRecorder()
	h.Index(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestToFeaturedVMsLocaleFallback(t *testing.T) {
	now := time.Now()
	in := []models.Post{{
		Title:       models.Translated{EN: "English only"},
		Slug:        "english-only",
		Category:    models.CategoryJourney,
		PublishedAt: &now,
	}}

	out := toFeaturedVMs(in, "ko")
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Title != "English only" {
		t.Errorf("Title = %q, want fallback to English", out[0].Title)
	}
}
