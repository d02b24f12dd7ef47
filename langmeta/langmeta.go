// Package langmeta provides a shared language metadata registry
// (native names and emoji flags) used by the CLI status output.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

// Registry contains canonical language metadata.
// Locale variants are resolved in Resolve() via normalization and base fallback.
var Registry = map[string]Meta{
	"ar": {Name: "العربية", Flag: "🇸🇦"},
	"bg": {Name: "Български", Flag: "🇧🇬"},
	"cs": {Name: "Čeština", Flag: "🇨🇿"},
	"da": {Name: "Dansk", Flag: "🇩🇰"},
	"de": {Name: "Deutsch", Flag: "🇩🇪"},
	"el": {Name: "Ελληνικά", Flag: "🇬🇷"},
	"en": {Name: "English", Flag: "🇺🇸"},
	"es": {Name: "Español", Flag: "🇪🇸"},
	"fa": {Name: "فارسی", Flag: "🇮🇷"},
	"fi": {Name: "Suomi", Flag: "🇫🇮"},
	"fr": {Name: "Français", Flag: "🇫🇷"},
	"he": {Name: "עברית", Flag: "🇮🇱"},
	"hi": {Name: "हिन्दी", Flag: "🇮🇳"},
	"hu": {Name: "Magyar", Flag: "🇭🇺"},
	"id": {Name: "Bahasa Indonesia", Flag: "🇮🇩"},
	"it": {Name: "Italiano", Flag: "🇮🇹"},
	"ja": {Name: "日本語", Flag: "🇯🇵"},
	"ko": {Name: "한국어", Flag: "🇰🇷"},
	"nb": {Name: "Norsk bokmål", Flag: "🇳🇴"},
	"nl": {Name: "Nederlands", Flag: "🇳🇱"},
	"pl": {Name: "Polski", Flag: "🇵🇱"},
	"pt": {Name: "Português", Flag: "🇵🇹"},
	"ro": {Name: "Română", Flag: "🇷🇴"},
	"ru": {Name: "Русский", Flag: "🇷🇺"},
	"sk": {Name: "Slovenčina", Flag: "🇸🇰"},
	"sv": {Name: "Svenska", Flag: "🇸🇪"},
	"th": {Name: "ไทย", Flag: "🇹🇭"},
	"tr": {Name: "Türkçe", Flag: "🇹🇷"},
	"uk": {Name: "Українська", Flag: "🇺🇦"},
	"vi": {Name: "Tiếng Việt", Flag: "🇻🇳"},
	"zh": {Name: "中文", Flag: "🇨🇳"},
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort language metadata for a language code.
// Codes missing from the registry fall back to the CLDR English display
// name; a code even CLDR cannot name is echoed back unchanged.
func Resolve(lang string) Meta {
	if m, ok := Registry[lang]; ok {
		return m
	}
	normalized := canonicalize(lang)
	if m, ok := Registry[normalized]; ok {
		return m
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if m, ok := Registry[parts[0]]; ok {
			return m
		}
	}

	if tag, err := language.Parse(normalized); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return Meta{Name: name}
		}
	}
	return Meta{Name: lang}
}
