// Package content serves the site's localized markdown pages.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no language variant of a page exists.
var ErrNotFound = errors.New("content: page not found")

//go:embed pages
var embedded embed.FS

// Page is a rendered, sanitised content page.
type Page struct {
	Slug        string
	Lang        string
	Title       string
	Description string
	UpdatedAt   time.Time
	HTML        template.HTML
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	UpdatedAt   string `yaml:"updated_at"`
}

// Library loads pages from an fs.FS laid out as <lang>/<slug>.md.
type Library struct {
	fsys     fs.FS
	fallback string
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	ttl      time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewLibrary returns a library over fsys; missing variants fall back to fallback.
func NewLibrary(fsys fs.FS, fallback string) *Library {
	return &Library{
		fsys:     fsys,
		fallback: fallback,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newPagePolicy(),
		ttl:    5 * time.Minute,
		cache:  map[string]cacheEntry{},
	}
}

// Embedded returns a library over the pages compiled into the binary.
func Embedded(fallback string) *Library {
	sub, err := fs.Sub(embedded, "pages")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return NewLibrary(sub, fallback)
}

// SetCacheDuration overrides the in-memory cache lifetime; zero disables caching.
func (l *Library) SetCacheDuration(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ttl = d
	l.cache = map[string]cacheEntry{}
}

// Get returns slug in lang, or in the fallback language when lang has no variant.
func (l *Library) Get(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	key := lang + "|" + slug
	if p, ok := l.cached(key); ok {
		return p, nil
	}

	priority := []string{lang}
	if lang != l.fallback {
		priority = append(priority, l.fallback)
	}
	for _, candidate := range priority {
		if !validLang(candidate) {
			continue
		}
		page, err := l.read(slug, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		l.store(key, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

func (l *Library) read(slug, lang string) (Page, error) {
	file := path.Join(lang, slug+".md")
	raw, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(raw))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	var buf bytes.Buffer
	if err := l.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	safe := l.policy.SanitizeBytes(buf.Bytes())

	page := Page{
		Slug:        slug,
		Lang:        lang,
		Title:       strings.TrimSpace(front.Title),
		Description: strings.TrimSpace(front.Description),
		UpdatedAt:   parseDate(front.UpdatedAt),
		HTML:        template.HTML(safe),
	}
	if page.Title == "" {
		page.Title = firstHeading(safe)
	}
	if page.Title == "" {
		page.Title = slug
	}
	return page, nil
}

func (l *Library) cached(key string) (Page, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.cache[key]
	if !ok || time.Now().After(e.expires) {
		return Page{}, false
	}
	return e.page, true
}

func (l *Library) store(key string, p Page) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ttl <= 0 {
		return
	}
	l.cache[key] = cacheEntry{page: p, expires: time.Now().Add(l.ttl)}
}

func newPagePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// firstHeading returns the text of the first <h1> in fragment.
func firstHeading(fragment []byte) string {
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		return ""
	}
	var find func(n *html.Node) string
	find = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.DataAtom == atom.H1 {
			return strings.TrimSpace(textOf(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if s := find(c); s != "" {
				return s
			}
		}
		return ""
	}
	for _, n := range nodes {
		if s := find(n); s != "" {
			return s
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func validLang(lang string) bool {
	if lang == "" {
		return false
	}
	for _, r := range lang {
		if (r < 'a' || r > 'z') && r != '-' {
			return false
		}
	}
	return true
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}
