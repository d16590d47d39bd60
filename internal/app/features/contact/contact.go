// internal/app/features/contact/contact.go
package contact

import (
	"context"
	"net/http"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	contactstore "github.com/bnomad/website/internal/app/store/contacts"
	"github.com/bnomad/website/internal/app/system/formutil"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/inputval"
	"github.com/bnomad/website/internal/app/system/mailer"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides the public contact form handlers.
type Handler struct {
	contacts *contactstore.Store
	mail     *mailer.Mailer
	notifyTo string
	siteName string
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new contact Handler. mail may be nil and
// notifyTo may be empty, in which case submissions are stored without
// sending a notification.
func NewHandler(db *mongo.Database, mail *mailer.Mailer, notifyTo, siteName string, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		contacts: contactstore.New(db),
		mail:     mail,
		notifyTo: notifyTo,
		siteName: siteName,
		errLog:   errLog,
		logger:   logger,
	}
}

type contactInput struct {
	Name    string `validate:"required,max=200" label:"Name"`
	Email   string `validate:"required,email,max=254" label:"Email"`
	Subject string `validate:"max=300" label:"Subject"`
	Message string `validate:"required,max=5000" label:"Message"`
}

// FormVM is the view model for the contact form page.
type FormVM struct {
	formutil.Base
	Sent    bool
	Name    string
	Email   string
	Subject string
	Message string
}

// Routes returns a chi.Router with the contact routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Form)
	r.Post("/", h.Submit)
	return r
}

// Form renders the contact form. A successful submission redirects
// back here with sent=1 so a refresh cannot resubmit.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	vm := h.newFormVM(r)
	vm.Sent = r.URL.Query().Get("sent") == "1"
	// Program apply links prefill the subject with the program slug.
	vm.Subject = r.URL.Query().Get("program")
	templates.Render(w, r, "contact/form", vm)
}

// Submit validates and stores a submission, then notifies the site
// admin. Notification failures are logged and never shown to the
// visitor.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	loc := i18n.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, i18n.MustDict(loc).Get("contact", "errorFailed"))
		return
	}

	in := contactInput{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}
	if result := inputval.Validate(in); result.HasErrors() {
		vm := h.newFormVM(r)
		vm.Name, vm.Email, vm.Subject, vm.Message = in.Name, in.Email, in.Subject, in.Message
		vm.SetError(result.First())
		templates.Render(w, r, "contact/form", vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.contacts.Create(ctx, models.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Lang:    string(loc),
	})
	if err != nil {
		h.errLog.Log(r, "failed to store contact submission", err)
		h.renderError(w, r, i18n.MustDict(loc).Get("contact", "errorFailed"))
		return
	}

	if h.notifyTo != "" {
		email := mailer.ContactNotification(h.siteName, sub)
		email.To = h.notifyTo
		go func() {
			if err := h.mail.Send(email); err != nil {
				h.logger.Warn("contact notification send failed",
					zap.String("to", h.notifyTo),
					zap.Error(err))
			}
		}()
	}

	http.Redirect(w, r, i18n.PathPrefix(loc)+"/contact?sent=1", http.StatusSeeOther)
}

func (h *Handler) newFormVM(r *http.Request) FormVM {
	loc := i18n.FromRequest(r)
	title := i18n.MustDict(loc).Get("contact", "title")
	return FormVM{Base: formutil.NewBase(r, title)}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, msg string) {
	vm := h.newFormVM(r)
	vm.SetError(msg)
	templates.Render(w, r, "contact/form", vm)
}
