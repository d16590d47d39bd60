// Package auth provides cookie-session management and the admin route
// guard.
//
// The trust model is flat: any active account has full admin capability.
// Session state carries only the user id; fresh account data is fetched
// per request through a UserFetcher so disabled accounts and profile
// changes take effect immediately.
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionManager encapsulates the cookie store and configuration.
// It provides middleware and utilities for session-based authentication.
type SessionManager struct {
	store       *sessions.CookieStore
	logger      *zap.Logger
	name        string
	userFetcher UserFetcher
}

// SessionConfigError is returned when session configuration is invalid.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// NewSessionManager creates a SessionManager.
//
//   - sessionKey: signing key for cookies (≥32 random chars in production)
//   - name: session cookie name
//   - domain: cookie domain (empty means current host)
//   - maxAge: session cookie lifetime
//   - secure: true in production (Secure cookies)
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}

	weak := len(sessionKey) < 32 || isDefaultKey(sessionKey)
	if secure && weak {
		return nil, &SessionConfigError{
			Message: "session key is too weak for production; provide ≥32 random chars (not the default dev key)",
		}
	}
	if weak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)))
	}

	if name == "" {
		name = "bnomad-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
	}, nil
}

// SessionName returns the configured session cookie name.
func (sm *SessionManager) SessionName() string {
	return sm.name
}

// SetUserFetcher sets the UserFetcher used by LoadSessionUser to fetch
// fresh account data on each request. Must be called after database
// initialization.
func (sm *SessionManager) SetUserFetcher(uf UserFetcher) {
	sm.userFetcher = uf
}

// UserFetcher fetches fresh account data for a session.
// Implementations return nil if the account is not found or disabled,
// which invalidates the session.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// SessionUser is the authenticated admin in the request context,
// re-derived from the database on each request.
type SessionUser struct {
	ID            string
	Email         string
	DisplayName   string
	EmailVerified bool
}

// UserID returns the user's ID as an ObjectID, or the zero ObjectID when
// invalid.
func (u *SessionUser) UserID() primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag from the request context.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser returns middleware that injects the user into context
// if logged in. Fresh account data is fetched through the UserFetcher so
// disabled accounts take effect immediately.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			sm.logSessionError(r, err)
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			userID, _ := sess.Values[userIDKey].(string)

			if sm.userFetcher != nil && userID != "" {
				if u := sm.userFetcher.FetchUser(r.Context(), userID); u != nil {
					r = withUser(r, u)
				} else {
					sm.logger.Info("session invalidated: user not found or disabled",
						zap.String("user_id", userID),
						zap.String("path", r.URL.Path))
					sess.Values[isAuthKey] = false
					delete(sess.Values, userIDKey)
					_ = sess.Save(r, w) // best effort to clear
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that ensures a signed-in user is in
// context. Unauthenticated browser requests are redirected to the
// locale-prefixed admin login page; non-HTML callers get a plain 401.
func (sm *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			loc := i18n.FromRequest(r)
			ret := url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, i18n.PathPrefix(loc)+"/admin/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// CreateSession establishes a session for the user.
func (sm *SessionManager) CreateSession(w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID.Hex()

	return sess.Save(r, w)
}

// DestroySession terminates the user's session.
func (sm *SessionManager) DestroySession(w http.ResponseWriter, r *http.Request) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return
	}

	sess.Values[isAuthKey] = false
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a SessionUser into the request context for testing.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// logSessionError logs cookie decode failures at a severity matching
// their cause: expiry is routine, MAC failures may be tampering.
func (sm *SessionManager) logSessionError(r *http.Request, err error) {
	if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "expired timestamp"):
			sm.logger.Debug("session expired, starting fresh session",
				zap.String("path", r.URL.Path))
		case strings.Contains(msg, "mac") || strings.Contains(msg, "hash"):
			sm.logger.Warn("session MAC validation failed (possible tampering)",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()))
		default:
			sm.logger.Info("session decode failed, starting fresh session",
				zap.String("path", r.URL.Path))
		}
		return
	}
	sm.logger.Error("session store error, starting fresh session",
		zap.Error(err),
		zap.String("path", r.URL.Path))
}

// isDefaultKey checks if the session key appears to be a placeholder.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range []string{"dev-only", "change-me", "placeholder", "default", "example", "insecure", "test-key"} {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
