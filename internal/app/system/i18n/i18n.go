// Package i18n provides locale resolution and static translation bundles
// for the bilingual (English/Korean) site.
//
// Every public and admin route carries a locale as its first path segment
// (/en/blog, /ko/contact). Middleware redirects requests that lack a valid
// prefix; handlers read the active locale with FromRequest.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Locale is one of the two supported language codes.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleKO Locale = "ko"

	// DefaultLocale is used when no preference can be determined.
	DefaultLocale = LocaleEN
)

// Locales returns all supported locales.
func Locales() []Locale {
	return []Locale{LocaleEN, LocaleKO}
}

// Parse returns the locale for s and whether s is a recognized locale.
// Only exact matches of "en" and "ko" are valid.
func Parse(s string) (Locale, bool) {
	switch s {
	case "en":
		return LocaleEN, true
	case "ko":
		return LocaleKO, true
	}
	return DefaultLocale, false
}

// FromAcceptLanguage selects a locale from an Accept-Language style
// header value: Korean wins if the header mentions it at all, otherwise
// the default applies.
func FromAcceptLanguage(header string) Locale {
	if strings.Contains(strings.ToLower(header), "ko") {
		return LocaleKO
	}
	return DefaultLocale
}

type ctxKey struct{}

// WithLocale returns a context carrying the given locale.
func WithLocale(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, loc)
}

// FromContext returns the locale stored in ctx, or the default.
func FromContext(ctx context.Context) Locale {
	if loc, ok := ctx.Value(ctxKey{}).(Locale); ok {
		return loc
	}
	return DefaultLocale
}

// FromRequest resolves the active locale for a request. The chi {locale}
// URL parameter wins, then a locale placed in the context by middleware,
// then the default.
func FromRequest(r *http.Request) Locale {
	if seg := chi.URLParam(r, "locale"); seg != "" {
		if loc, ok := Parse(seg); ok {
			return loc
		}
	}
	return FromContext(r.Context())
}

// PathPrefix returns the locale as a path prefix, e.g. "/en".
func PathPrefix(loc Locale) string {
	return "/" + string(loc)
}
