package httpserver

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"rescathena.com/web/internal/config"
	"rescathena.com/web/internal/contact"
	"rescathena.com/web/internal/content"
	"rescathena.com/web/internal/handlers"
	"rescathena.com/web/internal/i18n"
	mw "rescathena.com/web/internal/middleware"
	"rescathena.com/web/public"
	"rescathena.com/web/templates"
)

// Config holds the runtime options and collaborators of the web server.
// Nil collaborators are built from App.
type Config struct {
	App       config.Config
	Logger    *zap.Logger
	Bundle    *i18n.Bundle
	Pages     *content.Library
	Sink      contact.Sink
	Templates fs.FS
	Assets    fs.FS
	Now       func() time.Time
}

// New constructs the HTTP server with the middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	h, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.App.ReadTimeout,
		WriteTimeout:      cfg.App.WriteTimeout,
		IdleTimeout:       cfg.App.IdleTimeout,
	}, nil
}

// NewHandler builds the router.
func NewHandler(cfg Config) (http.Handler, error) {
	app := cfg.App
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bundle := cfg.Bundle
	if bundle == nil {
		b, err := i18n.Load(i18n.Locales(), app.FallbackLang, []string{i18n.English, i18n.Spanish})
		if err != nil {
			return nil, fmt.Errorf("load translations: %w", err)
		}
		bundle = b
	}

	pages := cfg.Pages
	if pages == nil {
		pages = content.Embedded(bundle.Fallback())
		if app.Dev {
			pages.SetCacheDuration(0)
		}
	}

	sink := cfg.Sink
	if sink == nil {
		sink = contact.NewLogSink(logger.Named("contact"))
	}

	tmplFS := cfg.Templates
	if tmplFS == nil {
		tmplFS = templates.FS
		if app.Dev {
			tmplFS = os.DirFS(app.TemplatesDir)
		}
	}
	rnd, err := newRenderer(tmplFS, app.Dev)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	assets := cfg.Assets
	if assets == nil {
		assets = public.Static()
		if app.PublicDir != "" {
			assets = os.DirFS(app.PublicDir)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &server{
		bundle: bundle,
		pages:  pages,
		sink:   sink,
		render: rnd,
		site:   handlers.Site{BaseURL: app.BaseURL, Fallback: bundle.Fallback()},
		now:    now,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(assets)))

	r.Group(func(r chi.Router) {
		r.Use(mw.Preferences(bundle, mw.PreferencesConfig{
			DefaultTheme:  app.Theme(),
			SecureCookies: app.SecureCookies(),
		}))
		r.Use(mw.VaryLocale)
		r.Use(mw.Reveal(app.Threshold()))
		r.Use(mw.CSRF(mw.CSRFConfig{Secure: app.SecureCookies()}))

		r.Get("/", s.home)
		r.Post("/contact", s.submitContact)
		r.Get("/privacy", s.privacy)
	})

	return r, nil
}
