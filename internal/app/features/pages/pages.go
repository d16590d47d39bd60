// internal/app/features/pages/pages.go
package pages

import (
	"net/http"

	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the dictionary-driven static pages.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new pages Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// Routes returns a chi.Router with the static page routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/about", h.About)
	r.Get("/programs", h.Programs)
	r.Get("/programs/{slug}", h.ProgramDetail)
	r.Get("/projects", h.Projects)
	r.Get("/team", h.Team)
	return r
}

// ProgramCardVM is one catalog entry on the programs listing.
type ProgramCardVM struct {
	Slug     string
	Title    string
	Tagline  string
	Duration string
	Location string
}

// ProgramsVM is the view model for the programs listing.
type ProgramsVM struct {
	viewdata.BaseVM
	Programs []ProgramCardVM
}

// ProgramVM is the view model for a program detail page.
type ProgramVM struct {
	viewdata.BaseVM
	Slug          string
	Name          string
	Tagline       string
	Description   string
	Duration      string
	Location      string
	WhoShouldJoin string
	Highlights    []string
	Included      []string
	ApplyURL      string
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/about", "about")
}

func (h *Handler) Programs(w http.ResponseWriter, r *http.Request) {
	loc := i18n.FromRequest(r)
	lang := string(loc)
	vm := ProgramsVM{
		BaseVM: viewdata.New(r, i18n.MustDict(loc).Get("programs", "title")),
	}
	for _, p := range programCatalog {
		vm.Programs = append(vm.Programs, ProgramCardVM{
			Slug:     p.Slug,
			Title:    p.Title.Get(lang),
			Tagline:  p.Tagline.Get(lang),
			Duration: p.Duration.Get(lang),
			Location: p.Location.Get(lang),
		})
	}
	templates.Render(w, r, "pages/programs", vm)
}

// ProgramDetail renders one catalog entry. Unknown slugs go back to
// the listing rather than a 404, matching the public site's behavior.
func (h *Handler) ProgramDetail(w http.ResponseWriter, r *http.Request) {
	loc := i18n.FromRequest(r)
	lang := string(loc)
	p := findProgram(chi.URLParam(r, "slug"))
	if p == nil {
		http.Redirect(w, r, i18n.PathPrefix(loc)+"/programs", http.StatusSeeOther)
		return
	}

	vm := ProgramVM{
		BaseVM:        viewdata.New(r, p.Title.Get(lang)),
		Slug:          p.Slug,
		Name:          p.Title.Get(lang),
		Tagline:       p.Tagline.Get(lang),
		Description:   p.Description.Get(lang),
		Duration:      p.Duration.Get(lang),
		Location:      p.Location.Get(lang),
		WhoShouldJoin: p.WhoShouldJoin.Get(lang),
		ApplyURL:      i18n.PathPrefix(loc) + "/contact?program=" + p.Slug,
	}
	for _, t := range p.Highlights {
		vm.Highlights = append(vm.Highlights, t.Get(lang))
	}
	for _, t := range p.Included {
		vm.Included = append(vm.Included, t.Get(lang))
	}
	templates.Render(w, r, "pages/program", vm)
}

func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/projects", "projects")
}

func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/team", "team")
}

// render looks up the page title in the locale dictionary so the
// <title> tag matches the heading.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, section string) {
	loc := i18n.FromRequest(r)
	title := i18n.MustDict(loc).Get(section, "title")
	templates.Render(w, r, name, viewdata.New(r, title))
}
