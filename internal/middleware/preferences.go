package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"rescathena.com/web/internal/i18n"
	"rescathena.com/web/internal/prefs"
)

// PreferencesConfig controls the preference cookies.
type PreferencesConfig struct {
	DefaultTheme  prefs.Theme
	SecureCookies bool
}

// Preferences builds the request's language and theme state from the
// preference cookies (falling back to Accept-Language), applies `hl` and
// `theme` query overrides, and attaches both to the request context.
func Preferences(bundle *i18n.Bundle, cfg PreferencesConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := prefs.NewCookieStore(w, r, cfg.SecureCookies)
			lang := prefs.NewLanguage(bundle, store, r.Header.Get("Accept-Language"))
			theme := prefs.NewThemeState(store, cfg.DefaultTheme)

			q := r.URL.Query()
			if hl := q.Get("hl"); hl != "" {
				if code, ok := languageParam(hl); ok {
					lang.SetLanguage(code)
				}
			}
			if t, ok := prefs.ParseTheme(q.Get("theme")); ok {
				theme.SetTheme(t)
			}

			// surface Content-Language
			w.Header().Set("Content-Language", lang.Code())

			ctx := prefs.WithLanguage(r.Context(), lang)
			ctx = prefs.WithTheme(ctx, theme)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// languageParam accepts any well-formed BCP 47 tag, lowercased. Whether the
// code is supported is left to the language state.
func languageParam(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || len(v) > 35 {
		return "", false
	}
	if _, err := language.Parse(v); err != nil {
		return "", false
	}
	return v, true
}
