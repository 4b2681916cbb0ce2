// Package i18n holds the storefront's English and Arabic strings.
package i18n

import (
	"fmt"
	"strings"
)

type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

// Parse maps a stored language code to a supported one, defaulting to English.
func Parse(s string) Lang {
	if Lang(s) == Arabic {
		return Arabic
	}
	return English
}

// Toggle switches between English and Arabic.
func (l Lang) Toggle() Lang {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Dir is the text direction of the language.
func (l Lang) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// T looks key up in lang and substitutes {name} placeholders from params. Unknown keys
// are returned unchanged.
func T(lang Lang, key string, params map[string]any) string {
	text, ok := catalog[Parse(string(lang))][key]
	if !ok || text == "" {
		text = key
	}
	for k, v := range params {
		text = strings.Replace(text, "{"+k+"}", fmt.Sprint(v), 1)
	}
	return text
}

// Has reports whether key is translated.
func Has(key string) bool {
	_, ok := catalog[English][key]
	return ok
}
