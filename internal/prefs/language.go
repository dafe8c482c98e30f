package prefs

import (
	"context"
	"errors"

	"rescathena.com/web/internal/i18n"
)

// LanguageKey is the storage key of the persisted language preference.
const LanguageKey = "rescathena-lang"

// ErrNoLanguage is returned when language state is requested from a context
// that never passed through the preferences middleware.
var ErrNoLanguage = errors.New("prefs: language state requested outside the preferences middleware; wrap the handler with middleware.Preferences")

// Language owns the active language code and translates against it.
type Language struct {
	bundle *i18n.Bundle
	store  Store
	code   string
}

// NewLanguage reads the persisted preference from store. Without one, the
// language is negotiated from locale (an Accept-Language value) and persisted.
// A persisted value is used as-is, even when the bundle does not support it.
func NewLanguage(bundle *i18n.Bundle, store Store, locale string) *Language {
	l := &Language{bundle: bundle, store: store}
	if saved, ok := store.Get(LanguageKey); ok {
		l.code = saved
		return l
	}
	l.code = bundle.Negotiate(locale)
	store.Set(LanguageKey, l.code)
	return l
}

// Code returns the active language code.
func (l *Language) Code() string { return l.code }

// SetLanguage switches and persists the active language. Codes are not
// checked against the supported set; an unknown code makes T return keys.
func (l *Language) SetLanguage(code string) {
	if code == l.code {
		return
	}
	l.code = code
	l.store.Set(LanguageKey, code)
}

// T translates key in the active language.
func (l *Language) T(key string) string {
	return l.bundle.T(l.code, key)
}

// Supported lists the languages with a dictionary.
func (l *Language) Supported() []string { return l.bundle.Supported() }

// IsSupported reports whether the active language has a dictionary.
func (l *Language) IsSupported() bool { return l.bundle.IsSupported(l.code) }

type languageKey struct{}

// WithLanguage attaches l to ctx.
func WithLanguage(ctx context.Context, l *Language) context.Context {
	return context.WithValue(ctx, languageKey{}, l)
}

// LanguageFromContext returns the language state attached by the middleware.
func LanguageFromContext(ctx context.Context) (*Language, error) {
	if l, ok := ctx.Value(languageKey{}).(*Language); ok && l != nil {
		return l, nil
	}
	return nil, ErrNoLanguage
}

// MustLanguage is LanguageFromContext that panics on integration mistakes.
func MustLanguage(ctx context.Context) *Language {
	l, err := LanguageFromContext(ctx)
	if err != nil {
		panic(err)
	}
	return l
}
