package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed locales/*.json
var localeFS embed.FS

// Dictionary is a locale's static translation bundle: section → field →
// string. Sections map to content domains (nav, hero, about, programs,
// projects, team, cta, footer, blog, contact).
type Dictionary map[string]map[string]string

// Get returns the string for section/field, or "" when absent. Missing
// entries render as empty rather than erroring; bundle completeness is
// checked in tests.
func (d Dictionary) Get(section, field string) string {
	if s, ok := d[section]; ok {
		return s[field]
	}
	return ""
}

// Section returns the named section map, or nil.
func (d Dictionary) Section(section string) map[string]string {
	return d[section]
}

var dictionaries map[Locale]Dictionary

func init() {
	dictionaries = make(map[Locale]Dictionary, 2)
	for _, loc := range Locales() {
		data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", loc))
		if err != nil {
			panic(fmt.Sprintf("i18n: missing locale bundle %q: %v", loc, err))
		}
		var d Dictionary
		if err := json.Unmarshal(data, &d); err != nil {
			panic(fmt.Sprintf("i18n: invalid locale bundle %q: %v", loc, err))
		}
		dictionaries[loc] = d
	}
}

// Dict returns the translation bundle for a locale. It returns an error
// only for unrecognized locales; the two supported bundles are embedded
// and verified at process start.
func Dict(loc Locale) (Dictionary, error) {
	d, ok := dictionaries[loc]
	if !ok {
		return nil, fmt.Errorf("i18n: unsupported locale %q", loc)
	}
	return d, nil
}

// MustDict returns the bundle for a locale, defaulting to English for
// anything unrecognized. Handlers use this after middleware has already
// validated the locale.
func MustDict(loc Locale) Dictionary {
	if d, ok := dictionaries[loc]; ok {
		return d
	}
	return dictionaries[DefaultLocale]
}
