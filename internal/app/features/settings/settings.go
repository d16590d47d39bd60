// internal/app/features/settings/settings.go
package settings

import (
	"net/http"

	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Info is the snapshot of runtime configuration shown to admins.
// Everything here comes from the environment at startup; nothing on
// this page is editable.
type Info struct {
	SiteName      string
	BaseURL       string
	Environment   string
	StorageType   string
	MailEnabled   bool
	GoogleEnabled bool
}

// Handler provides the read-only settings page.
type Handler struct {
	info   Info
	logger *zap.Logger
}

// NewHandler creates a new settings Handler.
func NewHandler(info Info, logger *zap.Logger) *Handler {
	return &Handler{info: info, logger: logger}
}

// VM is the view model for the settings page.
type VM struct {
	viewdata.BaseVM
	Info    Info
	Locales []string
}

// Routes returns a chi.Router with the settings route mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the configuration snapshot.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := VM{
		BaseVM: viewdata.New(r, "Settings"),
		Info:   h.info,
	}
	for _, loc := range i18n.Locales() {
		vm.Locales = append(vm.Locales, string(loc))
	}
	templates.Render(w, r, "settings/index", vm)
}
