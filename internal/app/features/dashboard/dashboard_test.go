package dashboard

import (
	"net/http"
	"strings"
	"testing"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	contactstore "github.com/bnomad/website/internal/app/store/contacts"
	posts "github.com/bnomad/website/internal/app/store/posts"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/bnomad/website/internal/testutil"
	"go.uber.org/zap"
)

func TestIndexCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.MustBootTemplates(t)
	ctx := testutil.TestContext(t)

	store := posts.New(db)
	for i, slug := range []string{"one", "two", "three"} {
		_, err := store.Create(ctx, posts.CreateInput{
			Title:     models.Translated{EN: "Post " + slug},
			Content:   models.Translated{EN: "Body"},
			Slug:      slug,
			Category:  models.CategoryJourney,
			Published: i < 2,
		}, "Admin", "admin@example.com")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := contactstore.New(db).Create(ctx, models.ContactSubmission{
		Name: "Jamie", Email: "jamie@example.com", Message: "Hi", Lang: "en",
	}); err != nil {
		t.Fatalf("contacts Create() error = %v", err)
	}

	h := NewHandler(db, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser())
	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "2 published, 1 drafts") {
		t.Errorf("body missing post counts, got: %.300s", body)
	}
}
