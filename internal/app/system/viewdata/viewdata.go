// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/bnomad/website/internal/app/system/auth"
	"github.com/bnomad/website/internal/app/system/i18n"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is used until Init is called with the configured name.
const DefaultSiteName = "Bnomad"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.New(r, "Page Title"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site identity (from config)
	SiteName string
	BaseURL  string

	// Locale context (from the URL prefix)
	Locale     string
	AltLocales []AltLocale
	Dict       i18n.Dictionary

	// User context (from auth middleware)
	IsLoggedIn bool
	UserID     string
	UserName   string
	UserEmail  string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// AltLocale is a language-switcher entry pointing at the current page
// under another locale prefix.
type AltLocale struct {
	Code string
	Path string
}

var (
	siteName = DefaultSiteName
	baseURL  string
)

// Init sets the configured site name and public base URL.
// Call this once at startup from bootstrap.
func Init(name, base string) {
	if name != "" {
		siteName = name
	}
	baseURL = base
}

// New creates a fully populated BaseVM for a page.
//
// The locale and its translation dictionary come from the request's
// URL prefix. AltLocales carries links to the same path under every
// other locale for the language switcher.
func New(r *http.Request, title string) BaseVM {
	loc := i18n.FromRequest(r)

	vm := BaseVM{
		SiteName:    siteName,
		BaseURL:     baseURL,
		Locale:      string(loc),
		Dict:        i18n.MustDict(loc),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, i18n.PathPrefix(loc)),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	for _, other := range i18n.Locales() {
		if other == loc {
			continue
		}
		vm.AltLocales = append(vm.AltLocales, AltLocale{
			Code: string(other),
			Path: swapLocalePrefix(r.URL.Path, loc, other),
		})
	}

	if user, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserID = user.ID
		vm.UserName = user.DisplayName
		vm.UserEmail = user.Email
	}

	return vm
}

// T looks up a dictionary entry, returning the key itself when the
// entry is missing so broken lookups are visible in dev.
func (vm BaseVM) T(section, field string) string {
	if v := vm.Dict.Get(section, field); v != "" {
		return v
	}
	return section + "." + field
}

// swapLocalePrefix rewrites /en/foo to /ko/foo. Paths without the
// expected prefix get the target prefix prepended.
func swapLocalePrefix(path string, from, to i18n.Locale) string {
	fromPrefix := i18n.PathPrefix(from)
	if path == fromPrefix {
		return i18n.PathPrefix(to)
	}
	if len(path) > len(fromPrefix) && path[:len(fromPrefix)+1] == fromPrefix+"/" {
		return i18n.PathPrefix(to) + path[len(fromPrefix):]
	}
	return i18n.PathPrefix(to) + path
}
