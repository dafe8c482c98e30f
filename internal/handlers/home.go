package handlers

import (
	"rescathena.com/web/internal/contact"
	"rescathena.com/web/internal/seo"
)

// HomeData is the view model for the landing page.
type HomeData struct {
	Layout
	Stats    []Stat
	Features []Feature
	Roles    []Role
	Contact  ContactForm
}

// Stat is one figure of the motivation section.
type Stat struct {
	Value string
	Label string
}

// Feature is one card of the collaboration section. Icon holds SVG path data.
type Feature struct {
	Icon        []string
	Title       string
	Description string
}

// Role is one "who we need" chip of the collaboration section.
type Role struct {
	Emoji string
	Title string
	Desc  string
}

// ContactForm is the state of the contact section.
type ContactForm struct {
	Action    string
	CSRF      string
	Values    contact.Submission
	Submitted bool
	Errors    *contact.ValidationError
}

// HasError reports whether field failed validation.
func (f ContactForm) HasError(field string) bool {
	return f.Errors.Has(field)
}

var statKeys = []string{"stat1", "stat2", "stat3"}

var featureDefs = []struct {
	key  string
	icon []string
}{
	{key: "openSource", icon: []string{"M10 20l4-16m4 4l4 4-4 4M6 16l-4-4 4-4"}},
	{key: "communityValidated", icon: []string{"M17 20h5v-2a3 3 0 00-5.356-1.857M17 20H7m10 0v-2c0-.656-.126-1.283-.356-1.857M7 20H2v-2a3 3 0 015.356-1.857M7 20v-2c0-.656.126-1.283.356-1.857m0 0a5.002 5.002 0 019.288 0M15 7a3 3 0 11-6 0 3 3 0 016 0zm6 3a2 2 0 11-4 0 2 2 0 014 0zM7 10a2 2 0 11-4 0 2 2 0 014 0z"}},
	{key: "trustScores", icon: []string{"M9 12l2 2 4-4m5.618-4.016A11.955 11.955 0 0112 2.944a11.955 11.955 0 01-8.618 3.04A12.02 12.02 0 003 9c0 5.591 3.824 10.29 9 11.622 5.176-1.332 9-6.03 9-11.622 0-1.042-.133-2.052-.382-3.016z"}},
	{key: "radicalTransparency", icon: []string{
		"M15 12a3 3 0 11-6 0 3 3 0 016 0z",
		"M2.458 12C3.732 7.943 7.523 5 12 5c4.478 0 8.268 2.943 9.542 7-1.274 4.057-5.064 7-9.542 7-4.477 0-8.268-2.943-9.542-7z",
	}},
}

var roleDefs = []struct {
	key   string
	emoji string
}{
	{key: "developers", emoji: "💻"},
	{key: "designers", emoji: "🎨"},
	{key: "marketers", emoji: "📢"},
	{key: "ngoExperts", emoji: "🏛️"},
	{key: "anyone", emoji: "❤️"},
}

// BuildHomeData constructs the landing page view model.
func BuildHomeData(l Layout, site Site, form ContactForm) HomeData {
	l.SEO = baseMeta(l, site, "/", l.T("meta.title"), l.T("meta.description"))
	l.SEO.JSONLD = []string{
		seo.JSON(seo.Organization(seo.SiteName, WebsiteURL, []string{GitHubURL})),
		seo.JSON(seo.WebSite(seo.SiteName, seo.Absolute(site.BaseURL, "/"), l.Lang.Code())),
	}

	if form.Action == "" {
		form.Action = "/contact"
	}
	if form.CSRF == "" {
		form.CSRF = l.CSRF
	}

	data := HomeData{Layout: l, Contact: form}
	for _, k := range statKeys {
		data.Stats = append(data.Stats, Stat{
			Value: l.T("motivation.stats." + k + "Value"),
			Label: l.T("motivation.stats." + k + "Label"),
		})
	}
	for _, f := range featureDefs {
		data.Features = append(data.Features, Feature{
			Icon:        f.icon,
			Title:       l.T("collaboration.features." + f.key + ".title"),
			Description: l.T("collaboration.features." + f.key + ".description"),
		})
	}
	for _, r := range roleDefs {
		data.Roles = append(data.Roles, Role{
			Emoji: r.emoji,
			Title: l.T("collaboration.roles." + r.key + ".title"),
			Desc:  l.T("collaboration.roles." + r.key + ".desc"),
		})
	}
	return data
}
