package seo

import (
	"net/url"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// SiteName is used for og:site_name and structured data.
const SiteName = "RESCATHENA"

// ogLocales maps language codes to og:locale values.
var ogLocales = map[string]string{
	"en": "en_US",
	"es": "es_ES",
}

// OGLocale returns the og:locale for lang.
func OGLocale(lang string) string {
	if v, ok := ogLocales[lang]; ok {
		return v
	}
	return ""
}

// Absolute joins baseURL and p. An empty baseURL yields p unchanged.
func Absolute(baseURL, p string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// Alternates builds hreflang links for each language plus x-default.
func Alternates(baseURL, p string, langs []string, fallback string) []Alternate {
	out := make([]Alternate, 0, len(langs)+1)
	for _, l := range langs {
		out = append(out, Alternate{Href: withLang(Absolute(baseURL, p), l), Hreflang: l})
	}
	if fallback != "" {
		out = append(out, Alternate{Href: Absolute(baseURL, p), Hreflang: "x-default"})
	}
	return out
}

func withLang(href, lang string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	q := u.Query()
	q.Set("hl", lang)
	u.RawQuery = q.Encode()
	return u.String()
}
