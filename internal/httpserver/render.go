package httpserver

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"rescathena.com/web/internal/format"
	"rescathena.com/web/internal/observability"
)

var funcMap = template.FuncMap{
	"fmtDate": format.FmtDate,
	// jsonld marks pre-marshalled structured data as safe script content
	"jsonld": func(s string) template.JS { return template.JS(s) },
}

// renderer executes page templates. In dev mode, templates are reparsed on each request.
type renderer struct {
	src fs.FS
	dev bool

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func newRenderer(src fs.FS, dev bool) (*renderer, error) {
	pages, err := parseTemplates(src)
	if err != nil {
		return nil, err
	}
	return &renderer{src: src, dev: dev, pages: pages}, nil
}

// parseTemplates parses layouts/ and partials/ once and clones them for every
// file under pages/, so each page can define its own "content" block.
func parseTemplates(src fs.FS) (map[string]*template.Template, error) {
	var shared, pageFiles []string
	if err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		if strings.HasPrefix(p, "pages/") {
			pageFiles = append(pageFiles, p)
		} else {
			shared = append(shared, p)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(shared) == 0 || len(pageFiles) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	root, err := template.New("_root").Funcs(funcMap).ParseFS(src, shared...)
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, p := range pageFiles {
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(src, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		pages[strings.TrimSuffix(path.Base(p), ".tmpl")] = t
	}
	return pages, nil
}

func (rn *renderer) lookup(page string) (*template.Template, error) {
	if rn.dev {
		pages, err := parseTemplates(rn.src)
		if err != nil {
			return nil, err
		}
		rn.mu.Lock()
		rn.pages = pages
		rn.mu.Unlock()
	}
	rn.mu.RLock()
	defer rn.mu.RUnlock()
	t, ok := rn.pages[page]
	if !ok {
		return nil, fmt.Errorf("page template %q not found", page)
	}
	return t, nil
}

// html executes block of page into a buffer and writes it with status.
// Nothing is written to w when execution fails.
func (rn *renderer) html(w http.ResponseWriter, r *http.Request, page, block string, status int, data any) {
	t, err := rn.lookup(page)
	if err != nil {
		rn.fail(w, r, "template parse error", err)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		rn.fail(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rn *renderer) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	if rn.dev {
		http.Error(w, fmt.Sprintf("%s: %v", msg, err), http.StatusInternalServerError)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
