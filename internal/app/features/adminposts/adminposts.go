// internal/app/features/adminposts/adminposts.go
package adminposts

import (
	"context"
	"net/http"
	"strings"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	poststore "github.com/bnomad/website/internal/app/store/posts"
	"github.com/bnomad/website/internal/app/system/auth"
	"github.com/bnomad/website/internal/app/system/formutil"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/inputval"
	"github.com/bnomad/website/internal/app/system/normalize"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides the admin post management pages.
type Handler struct {
	posts    *poststore.Store
	errPages *errorsfeature.Handler
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new admin posts Handler.
func NewHandler(db *mongo.Database, errPages *errorsfeature.Handler, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		posts:    poststore.New(db),
		errPages: errPages,
		errLog:   errLog,
		logger:   logger,
	}
}

type postInput struct {
	TitleEN   string `validate:"required,max=300" label:"English title"`
	TitleKO   string `validate:"max=300" label:"Korean title"`
	Slug      string `validate:"required,max=200" label:"Slug"`
	ContentEN string `validate:"required" label:"English content"`
	ContentKO string `label:"Korean content"`
	Category  string `validate:"required,category" label:"Category"`
	Cover     string `validate:"max=500" label:"Cover image"`
}

// RowVM is one post in the admin listing.
type RowVM struct {
	ID        string
	Title     string
	Slug      string
	Category  string
	Published bool
	Featured  bool
	Updated   string
}

// ListVM is the view model for the admin post listing.
type ListVM struct {
	viewdata.BaseVM
	Posts []RowVM
}

// FormVM is the view model for the new and edit post forms.
type FormVM struct {
	formutil.Base
	IsEdit     bool
	ID         string
	TitleEN    string
	TitleKO    string
	Slug       string
	ExcerptEN  string
	ExcerptKO  string
	ContentEN  string
	ContentKO  string
	Category   string
	Categories []string
	Tags       string
	Cover      string
	Featured   bool
	Published  bool
}

// Routes returns a chi.Router with the admin post routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/new", h.NewForm)
	r.Post("/", h.Create)
	r.Get("/{id}/edit", h.EditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
	return r
}

// List shows every post, drafts included, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Reads degrade to an empty listing rather than an error page.
	posts, err := h.posts.ListAll(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list posts", err)
		posts = nil
	}

	loc := i18n.FromRequest(r)
	vm := ListVM{
		BaseVM: viewdata.New(r, "Posts"),
		Posts:  make([]RowVM, 0, len(posts)),
	}
	for _, p := range posts {
		vm.Posts = append(vm.Posts, RowVM{
			ID:        p.ID.Hex(),
			Title:     p.Title.Get(string(loc)),
			Slug:      p.Slug,
			Category:  p.Category,
			Published: p.Published,
			Featured:  p.Featured,
			Updated:   p.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	templates.Render(w, r, "adminposts/list", vm)
}

// NewForm renders an empty post form.
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	vm := h.newFormVM(r, "New Post")
	templates.Render(w, r, "adminposts/form", vm)
}

// Create validates the form and inserts a new post. The author
// snapshot comes from the signed-in admin.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vm, in, ok := h.parseForm(w, r, "New Post")
	if !ok {
		return
	}

	user, _ := auth.CurrentUser(r)
	if user == nil {
		h.errPages.InternalError(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := h.posts.Create(ctx, poststore.CreateInput{
		Title:      models.Translated{EN: in.TitleEN, KO: in.TitleKO},
		Slug:       in.Slug,
		Content:    models.Translated{EN: in.ContentEN, KO: in.ContentKO},
		Excerpt:    models.Translated{EN: vm.ExcerptEN, KO: vm.ExcerptKO},
		Category:   in.Category,
		Tags:       normalize.Tags(vm.Tags),
		CoverImage: in.Cover,
		Featured:   vm.Featured,
		Published:  vm.Published,
	}, user.DisplayName, user.Email)
	if err != nil {
		h.renderStoreError(w, r, vm, err, "failed to create post")
		return
	}

	http.Redirect(w, r, h.listPath(r), http.StatusSeeOther)
}

// EditForm renders the form pre-filled from an existing post.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	vm := h.newFormVM(r, "Edit Post")
	vm.IsEdit = true
	vm.ID = post.ID.Hex()
	vm.TitleEN, vm.TitleKO = post.Title.EN, post.Title.KO
	vm.Slug = post.Slug
	vm.ExcerptEN, vm.ExcerptKO = post.Excerpt.EN, post.Excerpt.KO
	vm.ContentEN, vm.ContentKO = post.Content.EN, post.Content.KO
	vm.Category = post.Category
	vm.Tags = strings.Join(post.Tags, ", ")
	vm.Cover = post.CoverImage
	vm.Featured = post.Featured
	vm.Published = post.Published
	templates.Render(w, r, "adminposts/form", vm)
}

// Update validates the form and replaces the post's editable fields.
// The publish date follows the set-once rule in the store.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	vm, in, ok := h.parseForm(w, r, "Edit Post")
	if !ok {
		return
	}
	vm.IsEdit = true
	vm.ID = post.ID.Hex()

	title := models.Translated{EN: in.TitleEN, KO: in.TitleKO}
	content := models.Translated{EN: in.ContentEN, KO: in.ContentKO}
	excerpt := models.Translated{EN: vm.ExcerptEN, KO: vm.ExcerptKO}
	tags := normalize.Tags(vm.Tags)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.posts.Update(ctx, post.ID, poststore.UpdateInput{
		Title:      &title,
		Slug:       &in.Slug,
		Content:    &content,
		Excerpt:    &excerpt,
		Category:   &in.Category,
		Tags:       &tags,
		CoverImage: &in.Cover,
		Featured:   &vm.Featured,
		Published:  &vm.Published,
	})
	if err != nil {
		h.renderStoreError(w, r, vm, err, "failed to update post")
		return
	}

	http.Redirect(w, r, h.listPath(r), http.StatusSeeOther)
}

// Delete removes a post permanently.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.errPages.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.posts.Delete(ctx, id); err != nil {
		h.errLog.Log(r, "failed to delete post", err)
		h.errPages.InternalError(w, r)
		return
	}

	http.Redirect(w, r, h.listPath(r), http.StatusSeeOther)
}

func (h *Handler) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.errPages.NotFound(w, r)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.errPages.NotFound(w, r)
		} else {
			h.errLog.Log(r, "failed to load post", err)
			h.errPages.InternalError(w, r)
		}
		return nil, false
	}
	return post, true
}

// parseForm reads and validates the shared post form. On validation
// failure it re-renders the form with the submitted values and
// reports ok=false.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request, title string) (FormVM, postInput, bool) {
	vm := h.newFormVM(r, title)

	if err := r.ParseForm(); err != nil {
		vm.SetError("The form could not be read.")
		templates.Render(w, r, "adminposts/form", vm)
		return vm, postInput{}, false
	}

	in := postInput{
		TitleEN:   strings.TrimSpace(r.FormValue("title_en")),
		TitleKO:   strings.TrimSpace(r.FormValue("title_ko")),
		Slug:      normalize.Slug(r.FormValue("slug")),
		ContentEN: r.FormValue("content_en"),
		ContentKO: r.FormValue("content_ko"),
		Category:  normalize.Category(r.FormValue("category")),
		Cover:     strings.TrimSpace(r.FormValue("cover_image")),
	}
	vm.TitleEN, vm.TitleKO = in.TitleEN, in.TitleKO
	vm.Slug = in.Slug
	vm.ExcerptEN = strings.TrimSpace(r.FormValue("excerpt_en"))
	vm.ExcerptKO = strings.TrimSpace(r.FormValue("excerpt_ko"))
	vm.ContentEN, vm.ContentKO = in.ContentEN, in.ContentKO
	vm.Category = in.Category
	vm.Tags = r.FormValue("tags")
	vm.Cover = in.Cover
	vm.Featured = r.FormValue("featured") == "on"
	vm.Published = r.FormValue("published") == "on"

	if result := inputval.Validate(in); result.HasErrors() {
		vm.SetError(result.First())
		templates.Render(w, r, "adminposts/form", vm)
		return vm, postInput{}, false
	}
	return vm, in, true
}

func (h *Handler) renderStoreError(w http.ResponseWriter, r *http.Request, vm FormVM, err error, logMsg string) {
	if err == poststore.ErrDuplicateSlug {
		vm.SetError("A post with this slug already exists.")
	} else {
		h.errLog.Log(r, logMsg, err)
		vm.SetError("The post could not be saved. Please try again.")
	}
	templates.Render(w, r, "adminposts/form", vm)
}

func (h *Handler) newFormVM(r *http.Request, title string) FormVM {
	return FormVM{
		Base:       formutil.NewBase(r, title),
		Categories: models.AllCategories(),
	}
}

func (h *Handler) listPath(r *http.Request) string {
	return i18n.PathPrefix(i18n.FromRequest(r)) + "/admin/posts"
}
