package handlers

import (
	"rescathena.com/web/internal/content"
	"rescathena.com/web/internal/seo"
)

// PageData is the view model for markdown content pages using the shared layout.
type PageData struct {
	Layout
	Page content.Page
}

// BuildPageData wraps a rendered content page in the layout.
func BuildPageData(l Layout, site Site, page content.Page) PageData {
	title := l.T("meta.title")
	if page.Title != "" {
		title = page.Title + " | " + seo.SiteName
	}
	l.SEO = baseMeta(l, site, l.Path, title, page.Description)
	return PageData{Layout: l, Page: page}
}
