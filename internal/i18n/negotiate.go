package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage reduces a single locale tag (e.g. "es-MX") to its bare
// language subtag and returns it when supported, otherwise fallback.
func DefaultLanguage(locale string, supported []string, fallback string) string {
	base := baseSubtag(locale)
	for _, s := range supported {
		if base != "" && base == s {
			return base
		}
	}
	return fallback
}

// Default is DefaultLanguage against the bundle's supported set.
func (b *Bundle) Default(locale string) string {
	base := baseSubtag(locale)
	if base != "" && b.IsSupported(base) {
		return base
	}
	return b.fallback
}

// Negotiate picks the best supported language from an Accept-Language header.
// Preferences are walked in q-value order; the first supported base subtag wins.
func (b *Bundle) Negotiate(acceptLang string) string {
	acceptLang = strings.TrimSpace(acceptLang)
	if acceptLang == "" {
		return b.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		// a bare, slightly malformed tag is still worth a try
		return b.Default(acceptLang)
	}
	for _, tag := range tags {
		base, conf := tag.Base()
		if conf != language.Exact {
			continue
		}
		if code := base.String(); b.IsSupported(code) {
			return code
		}
	}
	return b.fallback
}

func baseSubtag(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	if tag, err := language.Parse(locale); err == nil {
		if base, conf := tag.Base(); conf == language.Exact {
			return base.String()
		}
	}
	// navigator-style split on the first separator
	if i := strings.IndexAny(locale, "-_"); i != -1 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}
