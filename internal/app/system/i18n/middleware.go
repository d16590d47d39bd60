package i18n

import (
	"net/http"
	"strings"
)

// bypassPrefixes are path prefixes that never participate in locale
// resolution: assets, uploaded files, and operational endpoints.
var bypassPrefixes = []string{
	"/static/",
	"/assets/",
	"/uploads/",
	"/health",
	"/auth/",
}

// Bypass reports whether a path is exempt from locale redirection.
// Paths whose final segment contains a dot (favicon.ico, robots.txt,
// anything with a file extension) are also exempt.
func Bypass(path string) bool {
	for _, p := range bypassPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		if strings.ContainsRune(path[i+1:], '.') {
			return true
		}
	}
	return false
}

// hasLocalePrefix reports whether the path's first segment is a valid
// locale, and returns it.
func hasLocalePrefix(path string) (Locale, bool) {
	seg := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	return Parse(seg)
}

// RedirectMiddleware redirects any request whose path lacks a valid
// locale prefix to the same path with a resolved locale prepended. The
// locale comes from the Accept-Language header (Korean if mentioned,
// English otherwise). Requests that already carry a valid prefix pass
// through untouched, so the redirect is idempotent.
func RedirectMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if Bypass(path) {
			next.ServeHTTP(w, r)
			return
		}

		if loc, ok := hasLocalePrefix(path); ok {
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), loc)))
			return
		}

		loc := FromAcceptLanguage(r.Header.Get("Accept-Language"))
		target := PathPrefix(loc)
		if path != "/" {
			target += path
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
}
