package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rescathena.com/web/internal/contact"
	"rescathena.com/web/internal/content"
	"rescathena.com/web/internal/i18n"
	"rescathena.com/web/internal/prefs"
	"rescathena.com/web/internal/reveal"
)

func newLayout(t *testing.T, rawURL, lang string) Layout {
	t.Helper()
	bundle, err := i18n.LoadEmbedded()
	require.NoError(t, err)
	store := prefs.NewMemoryStore(map[string]string{prefs.LanguageKey: lang})
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return BuildLayout(LayoutInput{
		URL:    u,
		Lang:   prefs.NewLanguage(bundle, store, ""),
		Theme:  prefs.NewThemeState(store, prefs.Dark),
		Reveal: reveal.NewTracker(0.2),
		CSRF:   "tok",
		Site:   Site{BaseURL: "https://rescathena.com", Fallback: i18n.English},
		Now:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestBuildLayout(t *testing.T) {
	l := newLayout(t, "/", "es")

	require.Equal(t, "es", l.LangCode())
	require.Equal(t, "dark", l.ThemeName())
	require.Equal(t, "/?theme=light", l.ThemeHref)
	require.Equal(t, 2026, l.Year)
	require.Equal(t, "Inicio", l.T("nav.home"))
	require.Len(t, l.Nav, 4)
	require.Equal(t, "#hero", l.Nav[0].Href)
	require.Equal(t, "#contact", l.JoinUs.Href)

	require.Len(t, l.Languages, 2)
	for _, opt := range l.Languages {
		require.Equal(t, opt.Code == "es", opt.Active)
	}
}

func TestBuildLayoutOffLandingPage(t *testing.T) {
	l := newLayout(t, "/privacy?hl=en", "en")

	require.Equal(t, "/privacy", l.Path)
	require.Equal(t, "/#motivation", l.Nav[1].Href)
	require.Equal(t, "/#contact", l.JoinUs.Href)
	require.Equal(t, "/privacy?theme=light", l.ThemeHref)
}

func TestBuildHomeData(t *testing.T) {
	l := newLayout(t, "/", "en")
	site := Site{BaseURL: "https://rescathena.com", Fallback: i18n.English}
	data := BuildHomeData(l, site, ContactForm{})

	require.Len(t, data.Stats, 3)
	require.Len(t, data.Features, 4)
	require.Len(t, data.Roles, 5)
	require.Len(t, data.Features[3].Icon, 2)
	for _, f := range data.Features {
		require.NotContains(t, f.Title, "collaboration.")
	}
	require.Equal(t, "💻", data.Roles[0].Emoji)

	require.Equal(t, "/contact", data.Contact.Action)
	require.Equal(t, "tok", data.Contact.CSRF)

	require.Equal(t, l.T("meta.title"), data.SEO.Title)
	require.Equal(t, "https://rescathena.com/", data.SEO.Canonical)
	require.Equal(t, "en_US", data.SEO.OG.Locale)
	require.Len(t, data.SEO.Alternates, 3)
	require.Len(t, data.SEO.JSONLD, 2)
}

func TestContactFormHasError(t *testing.T) {
	require.False(t, ContactForm{}.HasError(contact.FieldName))

	f := ContactForm{Errors: &contact.ValidationError{Fields: []string{contact.FieldEmail}}}
	require.True(t, f.HasError(contact.FieldEmail))
	require.False(t, f.HasError(contact.FieldName))
}

func TestBuildPageData(t *testing.T) {
	l := newLayout(t, "/privacy", "en")
	site := Site{BaseURL: "https://rescathena.com", Fallback: i18n.English}
	data := BuildPageData(l, site, content.Page{Slug: "privacy", Title: "Privacy notice", Description: "How we handle data"})

	require.Equal(t, "Privacy notice | RESCATHENA", data.SEO.Title)
	require.Equal(t, "How we handle data", data.SEO.Description)
	require.Equal(t, "https://rescathena.com/privacy", data.SEO.Canonical)
}
