// internal/app/features/admincontacts/admincontacts.go
package admincontacts

import (
	"context"
	"net/http"
	"strconv"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	contactstore "github.com/bnomad/website/internal/app/store/contacts"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides the admin contact submission pages. Submissions
// are read-only; there is no edit or delete.
type Handler struct {
	contacts *contactstore.Store
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new admin contacts Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		contacts: contactstore.New(db),
		errLog:   errLog,
		logger:   logger,
	}
}

// RowVM is one submission in the listing.
type RowVM struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Lang     string
	Received string
}

// ListVM is the view model for the submissions page.
type ListVM struct {
	viewdata.BaseVM
	Submissions []RowVM
	Page        int64
	PrevPage    int64
	NextPage    int64
	HasPrev     bool
	HasNext     bool
}

// pageSize is the number of submissions shown per page.
const pageSize = 50

// Routes returns a chi.Router with the admin contact routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List shows submissions newest first, paginated via ?page=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Reads degrade to an empty listing rather than an error page.
	subs, err := h.contacts.ListPage(ctx, pageSize, page)
	if err != nil {
		h.errLog.Log(r, "failed to list contact submissions", err)
		subs = nil
	}
	total, err := h.contacts.Count(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to count contact submissions", err)
		total = 0
	}

	vm := ListVM{
		BaseVM:      viewdata.New(r, "Contact Messages"),
		Submissions: make([]RowVM, 0, len(subs)),
		Page:        page,
		PrevPage:    page - 1,
		NextPage:    page + 1,
		HasPrev:     page > 1,
		HasNext:     page*pageSize < total,
	}
	for _, s := range subs {
		vm.Submissions = append(vm.Submissions, RowVM{
			Name:     s.Name,
			Email:    s.Email,
			Subject:  s.Subject,
			Message:  s.Message,
			Lang:     s.Lang,
			Received: s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	templates.Render(w, r, "admincontacts/list", vm)
}
