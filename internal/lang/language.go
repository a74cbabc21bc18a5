// Package lang handles the optional output language of LLM-written text.
package lang

import (
	"fmt"
	"strings"
)

// known maps ISO 639-1 base codes to display names. Regional variants
// are listed separately in regional.
var known = map[string]string{
	"ar": "Arabic",
	"ca": "Catalan",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"hi": "Hindi",
	"hu": "Hungarian",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"nl": "Dutch",
	"no": "Norwegian",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sv": "Swedish",
	"th": "Thai",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

var regional = map[string]string{
	"en-us": "American English",
	"en-gb": "British English",
	"fr-ca": "Canadian French",
	"es-mx": "Mexican Spanish",
	"pt-br": "Brazilian Portuguese",
	"pt-pt": "European Portuguese",
	"zh-cn": "Simplified Chinese",
	"zh-tw": "Traditional Chinese",
}

// Language is a validated language code. The zero value means
// "not specified": prompts are left in English.
type Language struct {
	code string
}

// Normalize lowercases a code and uses '-' as the region separator.
// "pt_BR" -> "pt-br"
func Normalize(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, "_", "-"))
}

// Parse validates a language code such as "fr" or "pt-BR".
// An empty string yields the zero Language.
func Parse(code string) (Language, error) {
	if code == "" {
		return Language{}, nil
	}
	n := Normalize(code)
	if _, ok := known[base(n)]; !ok {
		return Language{}, fmt.Errorf("invalid language code %q (use ISO 639-1 codes like 'en', 'fr', 'pt-BR'): %w",
			code, ErrInvalid)
	}
	return Language{code: n}, nil
}

// MustParse is Parse for constants in tests.
func MustParse(code string) Language {
	l, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns the normalized code, or "" for the zero value.
func (l Language) String() string { return l.code }

// IsZero reports whether no language was given.
func (l Language) IsZero() bool { return l.code == "" }

// IsEnglish reports whether the language is English or a regional English.
func (l Language) IsEnglish() bool { return base(l.code) == "en" }

// DisplayName returns a human-readable name, falling back to the base
// language name.
func (l Language) DisplayName() string {
	if name, ok := regional[l.code]; ok {
		return name
	}
	if name, ok := known[base(l.code)]; ok {
		return name
	}
	return l.code
}

// Apply prefixes prompt with a "Respond in <Language>." line. Prompts are
// written in English, so English and the zero value leave it unchanged.
func (l Language) Apply(prompt string) string {
	if l.IsZero() || l.IsEnglish() {
		return prompt
	}
	return fmt.Sprintf("Respond in %s.\n\n%s", l.DisplayName(), prompt)
}

func base(code string) string {
	if i := strings.Index(code, "-"); i != -1 {
		return code[:i]
	}
	return code
}
