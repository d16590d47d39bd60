// internal/app/features/blog/blog.go
package blog

import (
	"context"
	"html/template"
	"net/http"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	poststore "github.com/bnomad/website/internal/app/store/posts"
	"github.com/bnomad/website/internal/app/system/htmlsanitize"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/markdown"
	"github.com/bnomad/website/internal/app/system/normalize"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// listLimit caps how many posts a listing page loads.
const listLimit = 50

// Handler provides the public blog handlers.
type Handler struct {
	posts    *poststore.Store
	errPages *errorsfeature.Handler
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new blog Handler.
func NewHandler(db *mongo.Database, errPages *errorsfeature.Handler, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		posts:    poststore.New(db),
		errPages: errPages,
		errLog:   errLog,
		logger:   logger,
	}
}

// PostCardVM is one post in a listing, resolved to the page's locale.
type PostCardVM struct {
	Title       string
	Excerpt     string
	Slug        string
	Category    string
	Cover       string
	AuthorName  string
	PublishedAt string
}

// ListVM is the view model for the blog index and category pages.
type ListVM struct {
	viewdata.BaseVM
	Posts      []PostCardVM
	Category   string
	Categories []string
}

// DetailVM is the view model for a single post page.
type DetailVM struct {
	viewdata.BaseVM
	Post        PostCardVM
	Content     template.HTML
	ContentLang string
}

// Routes returns a chi.Router with the blog routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/category/{category}", h.ListByCategory)
	r.Get("/{slug}", h.Detail)
	return r
}

// List renders the blog index with all published posts. Query errors
// degrade to an empty listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.posts.ListPublished(ctx, listLimit)
	if err != nil {
		h.errLog.Log(r, "failed to list published posts", err)
		posts = nil
	}
	h.renderList(w, r, posts, "")
}

// ListByCategory renders the blog index filtered to one category.
// Unknown categories get the 404 page.
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := normalize.Category(chi.URLParam(r, "category"))
	if !models.IsValidCategory(category) {
		h.errPages.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.posts.ListByCategory(ctx, category, listLimit)
	if err != nil {
		h.errLog.Log(r, "failed to list posts by category", err)
		posts = nil
	}
	h.renderList(w, r, posts, category)
}

// Detail renders a single published post. The markdown body is
// rendered then sanitized before it reaches the template.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	loc := i18n.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// A failed fetch is treated like a miss so the reader sees the
	// 404 page rather than an error page.
	post, err := h.posts.GetBySlug(ctx, slug)
	if err != nil {
		h.errLog.Log(r, "failed to load post", err)
		post = nil
	}
	if post == nil || !post.Published {
		h.errPages.NotFound(w, r)
		return
	}

	// Track which language the body actually resolved to so the
	// template can set lang= when it falls back to English.
	body := post.Content.Get(string(loc))
	contentLang := string(loc)
	if loc != i18n.LocaleEN && post.Content.KO == "" {
		contentLang = string(i18n.LocaleEN)
	}

	vm := DetailVM{
		BaseVM:      viewdata.New(r, post.Title.Get(string(loc))),
		Post:        toCardVM(*post, loc),
		Content:     htmlsanitize.SanitizeToHTML(markdown.Render(body)),
		ContentLang: contentLang,
	}
	templates.Render(w, r, "blog/detail", vm)
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, posts []models.Post, category string) {
	loc := i18n.FromRequest(r)
	title := i18n.MustDict(loc).Get("blog", "title")

	vm := ListVM{
		BaseVM:     viewdata.New(r, title),
		Posts:      make([]PostCardVM, 0, len(posts)),
		Category:   category,
		Categories: models.AllCategories(),
	}
	for _, p := range posts {
		vm.Posts = append(vm.Posts, toCardVM(p, loc))
	}
	templates.Render(w, r, "blog/list", vm)
}

func toCardVM(p models.Post, loc i18n.Locale) PostCardVM {
	vm := PostCardVM{
		Title:      p.Title.Get(string(loc)),
		Excerpt:    p.Excerpt.Get(string(loc)),
		Slug:       p.Slug,
		Category:   p.Category,
		Cover:      p.CoverImage,
		AuthorName: p.Author.Name,
	}
	if p.PublishedAt != nil {
		vm.PublishedAt = p.PublishedAt.Format(dateFormat(loc))
	}
	return vm
}

func dateFormat(loc i18n.Locale) string {
	if loc == i18n.LocaleKO {
		return "2006년 1월 2일"
	}
	return "January 2, 2006"
}
