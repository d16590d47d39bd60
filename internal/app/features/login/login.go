// internal/app/features/login/login.go
package login

import (
	"context"
	"net/http"
	"strings"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	userstore "github.com/bnomad/website/internal/app/store/users"
	"github.com/bnomad/website/internal/app/system/auth"
	"github.com/bnomad/website/internal/app/system/authutil"
	"github.com/bnomad/website/internal/app/system/formutil"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const invalidCredentialsMsg = "Invalid email or password."

// Handler provides admin sign-in and sign-out.
type Handler struct {
	users         *userstore.Store
	sessions      *auth.SessionManager
	googleEnabled bool
	errLog        *errorsfeature.ErrorLogger
	logger        *zap.Logger
}

// NewHandler creates a new login Handler. googleEnabled controls
// whether the Google sign-in button is shown.
func NewHandler(db *mongo.Database, sessions *auth.SessionManager, googleEnabled bool, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		users:         userstore.New(db),
		sessions:      sessions,
		googleEnabled: googleEnabled,
		errLog:        errLog,
		logger:        logger,
	}
}

// FormVM is the view model for the login page.
type FormVM struct {
	formutil.Base
	Email         string
	ReturnTo      string
	GoogleEnabled bool
}

// Routes returns a chi.Router with the login and logout routes
// mounted. Login is reachable without a session; logout expects one.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/login", h.Form)
	r.Post("/login", h.Submit)
	r.Post("/logout", h.Logout)
	return r
}

// Form renders the login page.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	vm := h.newFormVM(r)
	vm.ReturnTo = safeReturn(r.URL.Query().Get("return"))
	if r.URL.Query().Get("error") == "google" {
		vm.SetError("Google sign-in failed or the account is not authorized.")
	}
	templates.Render(w, r, "login/form", vm)
}

// Submit checks credentials and establishes a session. The same
// message covers unknown email, wrong password, disabled accounts,
// and Google-only accounts with no password set.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	loc := i18n.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, invalidCredentialsMsg, "", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	returnTo := safeReturn(r.FormValue("return"))

	if email == "" || password == "" {
		h.renderError(w, r, invalidCredentialsMsg, email, returnTo)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.errLog.Log(r, "login lookup failed", err)
		}
		h.renderError(w, r, invalidCredentialsMsg, email, returnTo)
		return
	}
	if user.Status != models.StatusActive || user.PasswordHash == nil ||
		!authutil.CheckPassword(password, *user.PasswordHash) {
		h.logger.Info("login rejected", zap.String("email", user.Email))
		h.renderError(w, r, invalidCredentialsMsg, email, returnTo)
		return
	}

	if err := h.sessions.CreateSession(w, r, user.ID); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		h.renderError(w, r, invalidCredentialsMsg, email, returnTo)
		return
	}

	dest := returnTo
	if dest == "" {
		dest = i18n.PathPrefix(loc) + "/admin"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// Logout destroys the session and returns to the public site.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.DestroySession(w, r)
	http.Redirect(w, r, i18n.PathPrefix(i18n.FromRequest(r)), http.StatusSeeOther)
}

func (h *Handler) newFormVM(r *http.Request) FormVM {
	return FormVM{
		Base:          formutil.NewBase(r, "Sign In"),
		GoogleEnabled: h.googleEnabled,
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, msg, email, returnTo string) {
	vm := h.newFormVM(r)
	vm.Email = email
	vm.ReturnTo = returnTo
	vm.SetError(msg)
	templates.Render(w, r, "login/form", vm)
}

// safeReturn accepts only same-site absolute paths, blocking open
// redirects through the return parameter.
func safeReturn(s string) string {
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") && !strings.Contains(s, "\\") {
		return s
	}
	return ""
}
