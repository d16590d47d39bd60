package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testSessionKey, "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "s", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestNewSessionManager_WeakKeyInProduction(t *testing.T) {
	if _, err := NewSessionManager("short", "s", "", time.Hour, true, zap.NewNop()); err == nil {
		t.Error("expected error for weak key in secure mode")
	}
}

func TestNewSessionManager_DefaultKeyRejectedInProduction(t *testing.T) {
	key := "dev-only-change-me-please-0123456789ABCDEF"
	if _, err := NewSessionManager(key, "s", "", time.Hour, true, zap.NewNop()); err == nil {
		t.Error("expected error for default key in secure mode")
	}
}

func TestRequireAdmin_RedirectsToLocaleLogin(t *testing.T) {
	sm := newTestManager(t)

	handler := sm.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for unauthenticated request")
	}))

	req := httptest.NewRequest(http.MethodGet, "/ko/admin/posts", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	// No chi route context here, so the locale falls back to the default.
	if loc := rec.Header().Get("Location"); loc != "/en/admin/login?return=%2Fko%2Fadmin%2Fposts" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireAdmin_NonHTMLGets401(t *testing.T) {
	sm := newTestManager(t)

	handler := sm.RequireAdmin(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/en/admin/posts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdmin_PassesAuthenticatedUser(t *testing.T) {
	sm := newTestManager(t)

	called := false
	handler := sm.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/en/admin/posts", nil)
	req = WithTestUser(req, &SessionUser{ID: primitive.NewObjectID().Hex(), Email: "admin@test.com"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("handler should run for authenticated request")
	}
}

type stubFetcher struct {
	user *SessionUser
}

func (f stubFetcher) FetchUser(ctx context.Context, userID string) *SessionUser {
	return f.user
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	userID := primitive.NewObjectID()
	sm.SetUserFetcher(stubFetcher{user: &SessionUser{ID: userID.Hex(), Email: "admin@test.com"}})

	// Sign in and capture the cookie.
	req := httptest.NewRequest(http.MethodPost, "/en/admin/login", nil)
	rec := httptest.NewRecorder()
	if err := sm.CreateSession(rec, req, userID); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("CreateSession set no cookie")
	}

	// Replay the cookie through LoadSessionUser.
	var got *SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	}))

	req2 := httptest.NewRequest(http.MethodGet, "/en/admin/dashboard", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("no user in context after session round trip")
	}
	if got.ID != userID.Hex() {
		t.Errorf("user ID = %q, want %q", got.ID, userID.Hex())
	}
}

func TestSessionInvalidatedWhenUserGone(t *testing.T) {
	sm := newTestManager(t)
	userID := primitive.NewObjectID()
	sm.SetUserFetcher(stubFetcher{user: nil}) // account deleted or disabled

	req := httptest.NewRequest(http.MethodPost, "/en/admin/login", nil)
	rec := httptest.NewRecorder()
	if err := sm.CreateSession(rec, req, userID); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	var found bool
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = CurrentUser(r)
	}))

	req2 := httptest.NewRequest(http.MethodGet, "/en/admin/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req2)

	if found {
		t.Error("session should be invalidated when fetcher returns nil")
	}
}
