package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"rescathena.com/web/internal/contact"
	"rescathena.com/web/internal/content"
	"rescathena.com/web/internal/handlers"
	"rescathena.com/web/internal/i18n"
	mw "rescathena.com/web/internal/middleware"
	"rescathena.com/web/internal/observability"
	"rescathena.com/web/internal/prefs"
	"rescathena.com/web/internal/reveal"
)

// privacySlug names the content page linked from the contact form.
const privacySlug = "privacy"

type server struct {
	bundle *i18n.Bundle
	pages  *content.Library
	sink   contact.Sink
	render *renderer
	site   handlers.Site
	now    func() time.Time
}

func (s *server) layout(r *http.Request, u *url.URL) handlers.Layout {
	ctx := r.Context()
	return handlers.BuildLayout(handlers.LayoutInput{
		URL:    u,
		Lang:   prefs.MustLanguage(ctx),
		Theme:  prefs.MustTheme(ctx),
		Reveal: mw.TrackerFromContext(ctx),
		CSRF:   mw.CSRFTokenFromContext(ctx),
		Site:   s.site,
		Now:    s.now(),
	})
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// home renders the landing page.
func (s *server) home(w http.ResponseWriter, r *http.Request) {
	data := handlers.BuildHomeData(s.layout(r, r.URL), s.site, handlers.ContactForm{})
	s.render.html(w, r, "home", "base", http.StatusOK, data)
}

// submitContact validates the contact form and hands it to the sink. htmx
// requests receive only the contact-body fragment.
func (s *server) submitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sub := contact.FromForm(r.PostForm)
	sub.Lang = prefs.MustLanguage(ctx).Code()

	form := handlers.ContactForm{Values: sub}
	status := http.StatusOK
	accepted, err := contact.Accept(ctx, s.sink, sub, s.now())
	var invalid *contact.ValidationError
	switch {
	case errors.As(err, &invalid):
		form.Errors = invalid
		status = http.StatusUnprocessableEntity
	case err != nil:
		observability.FromContext(ctx).Error("contact submit failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	default:
		observability.FromContext(ctx).Info("contact form accepted", zap.String("submission_id", accepted.ID))
		form = handlers.ContactForm{Submitted: true}
	}

	// links on the re-rendered page point at the landing page, not the POST target
	u := &url.URL{Path: "/"}
	l := s.layout(r, u)
	l.Reveal.Section("contact").Observe(reveal.Entry{Intersecting: true, Ratio: 1})
	data := handlers.BuildHomeData(l, s.site, form)

	if mw.IsHTMX(ctx) {
		s.render.html(w, r, "home", "contact-body", status, data)
		return
	}
	s.render.html(w, r, "home", "base", status, data)
}

// privacy renders the privacy notice in the active language.
func (s *server) privacy(w http.ResponseWriter, r *http.Request) {
	lang := prefs.MustLanguage(r.Context())
	page, err := s.pages.Get(privacySlug, lang.Code())
	if errors.Is(err, content.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("load page", zap.String("slug", privacySlug), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data := handlers.BuildPageData(s.layout(r, r.URL), s.site, page)
	s.render.html(w, r, "privacy", "base", http.StatusOK, data)
}
