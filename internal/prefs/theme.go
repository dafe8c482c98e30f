package prefs

import (
	"context"
	"errors"
	"strings"
)

// ThemeKey is the storage key of the persisted theme preference.
const ThemeKey = "rescathena-theme"

// Theme is the visual variant of the page.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ErrNoTheme mirrors ErrNoLanguage for theme state.
var ErrNoTheme = errors.New("prefs: theme state requested outside the preferences middleware; wrap the handler with middleware.Preferences")

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// ThemeState owns the active theme.
type ThemeState struct {
	store Store
	theme Theme
}

// NewThemeState restores a persisted theme or starts from def. Unknown stored
// values are ignored.
func NewThemeState(store Store, def Theme) *ThemeState {
	if _, ok := ParseTheme(string(def)); !ok {
		def = Dark
	}
	s := &ThemeState{store: store, theme: def}
	if saved, ok := store.Get(ThemeKey); ok {
		if t, ok := ParseTheme(saved); ok {
			s.theme = t
		}
	}
	return s
}

// Theme returns the active theme.
func (s *ThemeState) Theme() Theme { return s.theme }

// IsDark reports whether the dark variant is active.
func (s *ThemeState) IsDark() bool { return s.theme == Dark }

// Next is the theme a toggle would switch to.
func (s *ThemeState) Next() Theme { return s.theme.Opposite() }

// SetTheme switches and persists the theme.
func (s *ThemeState) SetTheme(t Theme) {
	if _, ok := ParseTheme(string(t)); !ok || t == s.theme {
		return
	}
	s.theme = t
	s.store.Set(ThemeKey, string(t))
}

// Toggle flips the theme and returns the new value.
func (s *ThemeState) Toggle() Theme {
	s.SetTheme(s.Next())
	return s.theme
}

type themeKey struct{}

// WithTheme attaches s to ctx.
func WithTheme(ctx context.Context, s *ThemeState) context.Context {
	return context.WithValue(ctx, themeKey{}, s)
}

// ThemeFromContext returns the theme state attached by the middleware.
func ThemeFromContext(ctx context.Context) (*ThemeState, error) {
	if s, ok := ctx.Value(themeKey{}).(*ThemeState); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoTheme
}

// MustTheme is ThemeFromContext that panics on integration mistakes.
func MustTheme(ctx context.Context) *ThemeState {
	s, err := ThemeFromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
