package nav

import (
	"net/url"
	"strings"
)

// Item is an in-page navigation anchor.
type Item struct {
	Anchor   string // e.g. "#motivation"
	LabelKey string // i18n key, e.g. "nav.why"
}

// Main lists the page sections in scroll order.
var Main = []Item{
	{Anchor: "#hero", LabelKey: "nav.home"},
	{Anchor: "#motivation", LabelKey: "nav.why"},
	{Anchor: "#collaboration", LabelKey: "nav.collaborate"},
	{Anchor: "#contact", LabelKey: "nav.contact"},
}

// JoinUs is the call to action rendered next to the section links.
var JoinUs = Item{Anchor: "#contact", LabelKey: "nav.joinUs"}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
}

// LanguageOption is one entry of the language selector.
type LanguageOption struct {
	Code   string
	Label  string // "EN", "ES"
	Name   string // accessible name in the language itself
	Href   string
	Active bool
}

var languageNames = map[string]string{
	"en": "English",
	"es": "Español",
}

// Build renders the section links. basePath is prefixed to anchors so the
// links also work from pages other than the landing page.
func Build(basePath string) []RenderedItem {
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{Href: basePath + it.Anchor, LabelKey: it.LabelKey})
	}
	return items
}

// Languages builds the language selector for the page at currentURL.
func Languages(currentURL *url.URL, supported []string, active string) []LanguageOption {
	out := make([]LanguageOption, 0, len(supported))
	for _, code := range supported {
		name := languageNames[code]
		if name == "" {
			name = strings.ToUpper(code)
		}
		out = append(out, LanguageOption{
			Code:   code,
			Label:  strings.ToUpper(code),
			Name:   name,
			Href:   withQuery(currentURL, "hl", code),
			Active: code == active,
		})
	}
	return out
}

// ThemeToggle returns the href that switches the page to next.
func ThemeToggle(currentURL *url.URL, next string) string {
	return withQuery(currentURL, "theme", next)
}

func withQuery(current *url.URL, key, value string) string {
	p := "/"
	q := url.Values{}
	if current != nil {
		if current.Path != "" {
			p = current.Path
		}
		q = current.Query()
	}
	// only one preference override at a time
	q.Del("hl")
	q.Del("theme")
	q.Set(key, value)
	return p + "?" + q.Encode()
}
