// internal/app/features/authgoogle/authgoogle.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	errorsfeature "github.com/bnomad/website/internal/app/features/errors"
	oauthstate "github.com/bnomad/website/internal/app/store/oauthstate"
	userstore "github.com/bnomad/website/internal/app/store/users"
	"github.com/bnomad/website/internal/app/system/auth"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/bnomad/website/internal/app/system/timeouts"
	"github.com/bnomad/website/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Config holds the Google OAuth client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether Google sign-in is configured.
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Handler implements Google sign-in for existing admin accounts.
// Accounts are never created here; an unknown Google email is turned
// away.
type Handler struct {
	users    *userstore.Store
	states   *oauthstate.Store
	sessions *auth.SessionManager
	oauth    *oauth2.Config
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new Google auth Handler.
func NewHandler(db *mongo.Database, sessions *auth.SessionManager, cfg Config, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		users:    userstore.New(db),
		states:   oauthstate.New(db),
		sessions: sessions,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		errLog: errLog,
		logger: logger,
	}
}

// Routes returns a chi.Router with the OAuth routes mounted. These
// live outside the locale prefix because the redirect URL registered
// with Google is fixed.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/start", h.Start)
	r.Get("/callback", h.Callback)
	return r
}

// Start stores a one-time state record carrying the locale and return
// path, then hands off to Google.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	loc := i18n.DefaultLocale
	if parsed, ok := i18n.Parse(r.URL.Query().Get("locale")); ok {
		loc = parsed
	}
	returnTo := safeReturn(r.URL.Query().Get("return"))

	state, err := randomState()
	if err != nil {
		h.errLog.Log(r, "failed to generate oauth state", err)
		h.redirectLogin(w, r, loc, true)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.states.Create(ctx, state, string(loc), returnTo); err != nil {
		h.errLog.Log(r, "failed to store oauth state", err)
		h.redirectLogin(w, r, loc, true)
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusSeeOther)
}

// Callback completes the exchange. The state record is single-use and
// expires on its own, so replays and stale links land back on the
// login page.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	st, ok := h.states.Consume(ctx, r.URL.Query().Get("state"))
	if !ok {
		h.logger.Warn("oauth callback with unknown or expired state")
		h.redirectLogin(w, r, i18n.DefaultLocale, true)
		return
	}
	loc, _ := i18n.Parse(st.Locale)

	if errCode := r.URL.Query().Get("error"); errCode != "" {
		h.logger.Info("google sign-in declined", zap.String("error", errCode))
		h.redirectLogin(w, r, loc, true)
		return
	}

	token, err := h.oauth.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		h.errLog.Log(r, "oauth code exchange failed", err)
		h.redirectLogin(w, r, loc, true)
		return
	}

	info, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		h.errLog.Log(r, "failed to fetch google userinfo", err)
		h.redirectLogin(w, r, loc, true)
		return
	}
	if info.Email == "" || !info.VerifiedEmail {
		h.logger.Warn("google account without verified email")
		h.redirectLogin(w, r, loc, true)
		return
	}

	user, err := h.users.GetByEmail(ctx, info.Email)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.errLog.Log(r, "google login lookup failed", err)
		} else {
			h.logger.Warn("google login for unknown account", zap.String("email", info.Email))
		}
		h.redirectLogin(w, r, loc, true)
		return
	}
	if user.Status != models.StatusActive {
		h.logger.Warn("google login for disabled account", zap.String("email", user.Email))
		h.redirectLogin(w, r, loc, true)
		return
	}

	if !user.EmailVerified {
		if err := h.users.UpdateProfile(ctx, user.ID, user.DisplayName, true); err != nil {
			h.errLog.Log(r, "failed to mark email verified", err)
		}
	}

	if err := h.sessions.CreateSession(w, r, user.ID); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		h.redirectLogin(w, r, loc, true)
		return
	}

	dest := st.ReturnTo
	if dest == "" {
		dest = i18n.PathPrefix(loc) + "/admin"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

type userInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *Handler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*userInfo, error) {
	resp, err := h.oauth.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (h *Handler) redirectLogin(w http.ResponseWriter, r *http.Request, loc i18n.Locale, failed bool) {
	dest := i18n.PathPrefix(loc) + "/admin/login"
	if failed {
		dest += "?error=google"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// safeReturn accepts only same-site absolute paths.
func safeReturn(s string) string {
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") && !strings.Contains(s, "\\") {
		return s
	}
	return ""
}
