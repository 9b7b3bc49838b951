package domain

import "strings"

type Language string

const (
	LanguageJA Language = "ja"
	LanguageEN Language = "en"
)

// ResolveLanguage picks the catalog language from the explicit app header,
// falling back to Accept-Language and finally English.
func ResolveLanguage(explicit, accept string) Language {
	switch explicit {
	case "ja":
		return LanguageJA
	case "en":
		return LanguageEN
	}
	if strings.HasPrefix(strings.ToLower(accept), "ja") {
		return LanguageJA
	}
	return LanguageEN
}
