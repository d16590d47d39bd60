package models

// Translated holds an English/Korean pair for a multilingual field.
// All multilingual content in the system uses this shape rather than
// free-form locale maps so the two supported locales are always explicit.
type Translated struct {
	EN string `bson:"en" json:"en"`
	KO string `bson:"ko" json:"ko"`
}

// Get returns the value for the given locale, falling back to English
// when the requested translation is empty. Any locale other than "ko"
// is treated as English.
func (t Translated) Get(locale string) string {
	if locale == "ko" && t.KO != "" {
		return t.KO
	}
	return t.EN
}

// IsEmpty reports whether neither translation has content.
func (t Translated) IsEmpty() bool {
	return t.EN == "" && t.KO == ""
}
