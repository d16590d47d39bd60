// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	contactstore "github.com/bnomad/website/internal/app/store/contacts"
	poststore "github.com/bnomad/website/internal/app/store/posts"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides the admin dashboard.
type Handler struct {
	posts    *poststore.Store
	contacts *contactstore.Store
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		posts:    poststore.New(db),
		contacts: contactstore.New(db),
		errLog:   errLog,
		logger:   logger,
	}
}

// VM is the view model for the dashboard page.
type VM struct {
	viewdata.BaseVM
	TotalPosts     int64
	PublishedPosts int64
	DraftPosts     int64
	Contacts       int64
}

// Routes returns a chi.Router with the dashboard route mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders content counts. A failing count renders as zero
// rather than an error page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	vm := VM{BaseVM: viewdata.New(r, "Dashboard")}
	vm.TotalPosts = h.count(ctx, r, bson.M{})
	vm.PublishedPosts = h.count(ctx, r, bson.M{"published": true})
	vm.DraftPosts = vm.TotalPosts - vm.PublishedPosts

	contacts, err := h.contacts.Count(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to count contacts", err)
	}
	vm.Contacts = contacts

	templates.Render(w, r, "dashboard/index", vm)
}

func (h *Handler) count(ctx context.Context, r *http.Request, filter bson.M) int64 {
	n, err := h.posts.Count(ctx, filter)
	if err != nil {
		h.errLog.Log(r, "failed to count posts", err)
		return 0
	}
	return n
}
