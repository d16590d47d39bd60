// internal/app/features/home/home.go
package home

import (
	"context"
	"net/http"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	poststore "github.com/bnomad/website/internal/app/store/posts"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// featuredLimit caps the featured strip on the landing page.
const featuredLimit = 3

// Handler provides home page handlers.
type Handler struct {
	posts  *poststore.Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		posts:  poststore.New(db),
		errLog: errLog,
		logger: logger,
	}
}

// FeaturedPostVM is one entry in the featured strip, resolved to the
// page's locale.
type FeaturedPostVM struct {
	Title    string
	Excerpt  string
	Slug     string
	Category string
	Cover    string
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM
	Featured []FeaturedPostVM
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the landing page: hero, program highlights, and the
// featured posts strip. A failing posts query degrades to an empty
// strip rather than an error page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	loc := i18n.FromRequest(r)

	vm := HomeVM{
		BaseVM: viewdata.New(r, ""),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	featured, err := h.posts.ListFeatured(ctx, featuredLimit)
	if err != nil {
		h.errLog.Log(r, "failed to load featured posts", err)
		featured = nil
	}
	vm.Featured = toFeaturedVMs(featured, loc)

	templates.Render(w, r, "home/index", vm)
}

func toFeaturedVMs(posts []models.Post, loc i18n.Locale) []FeaturedPostVM {
	out := make([]FeaturedPostVM, 0, len(posts))
	for _, p := range posts {
		out = append(out, FeaturedPostVM{
			Title:    p.Title.Get(string(loc)),
			Excerpt:  p.Excerpt.Get(string(loc)),
			Slug:     p.Slug,
			Category: p.Category,
			Cover:    p.CoverImage,
		})
	}
	return out
}
