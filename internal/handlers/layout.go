package handlers

import (
	"net/url"
	"time"

	"rescathena.com/web/internal/nav"
	"rescathena.com/web/internal/prefs"
	"rescathena.com/web/internal/reveal"
	"rescathena.com/web/internal/seo"
)

// Outbound links shown in the footer and structured data.
const (
	GitHubURL  = "https://github.com/rescathena"
	WebsiteURL = "https://rescathena.com"
)

// Site holds per-deployment values shared by every page.
type Site struct {
	BaseURL  string
	Fallback string
}

// LayoutInput is the per-request state the shared layout is built from.
type LayoutInput struct {
	URL    *url.URL
	Lang   *prefs.Language
	Theme  *prefs.ThemeState
	Reveal *reveal.Tracker
	CSRF   string
	Site   Site
	Now    time.Time
}

// Layout carries what the base template and navbar need on every page.
type Layout struct {
	Lang      *prefs.Language
	Theme     *prefs.ThemeState
	ThemeHref string
	Languages []nav.LanguageOption
	Nav       []nav.RenderedItem
	JoinUs    nav.RenderedItem
	SEO       seo.Meta
	Reveal    *reveal.Tracker
	Path      string
	Year      int
	CSRF      string
	GitHubURL string
	SiteURL   string
}

// BuildLayout assembles the shared layout. Pages other than the landing page
// link back to its sections with absolute anchors.
func BuildLayout(in LayoutInput) Layout {
	path := "/"
	if in.URL != nil && in.URL.Path != "" {
		path = in.URL.Path
	}
	base := ""
	if path != "/" {
		base = "/"
	}
	tracker := in.Reveal
	if tracker == nil {
		tracker = reveal.NewTracker(reveal.DefaultThreshold)
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	joinUs := nav.RenderedItem{Href: base + nav.JoinUs.Anchor, LabelKey: nav.JoinUs.LabelKey}
	return Layout{
		Lang:      in.Lang,
		Theme:     in.Theme,
		ThemeHref: nav.ThemeToggle(in.URL, string(in.Theme.Next())),
		Languages: nav.Languages(in.URL, in.Lang.Supported(), in.Lang.Code()),
		Nav:       nav.Build(base),
		JoinUs:    joinUs,
		Reveal:    tracker,
		Path:      path,
		Year:      now.Year(),
		CSRF:      in.CSRF,
		GitHubURL: GitHubURL,
		SiteURL:   WebsiteURL,
	}
}

// T translates key in the page's language. Templates call it as {{ .T "key" }}
// or {{ $.T "key" }} inside range blocks.
func (l Layout) T(key string) string {
	return l.Lang.T(key)
}

// LangCode is the value of <html lang>.
func (l Layout) LangCode() string {
	return l.Lang.Code()
}

// ThemeName is the value of <html data-theme>.
func (l Layout) ThemeName() string {
	return string(l.Theme.Theme())
}

// RevealClass registers a section with the page's tracker and returns its classes.
func (l Layout) RevealClass(id string) string {
	return l.Reveal.Class(id)
}

// RevealThreshold is handed to the browser observer.
func (l Layout) RevealThreshold() string {
	return l.Reveal.Threshold()
}

func baseMeta(l Layout, site Site, path, title, description string) seo.Meta {
	canonical := seo.Absolute(site.BaseURL, path)
	return seo.Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      "index,follow",
		OG: seo.OpenGraph{
			Title:       title,
			Description: description,
			Type:        "website",
			URL:         canonical,
			SiteName:    seo.SiteName,
			Locale:      seo.OGLocale(l.Lang.Code()),
		},
		Twitter:    seo.Twitter{Card: "summary"},
		Alternates: seo.Alternates(site.BaseURL, path, l.Lang.Supported(), site.Fallback),
	}
}
