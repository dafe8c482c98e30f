package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rescathena.com/web/internal/contact"
	"rescathena.com/web/internal/prefs"
	"rescathena.com/web/internal/testutil"
)

const csrfCookie = "rescathena_csrf"

func get(t *testing.T, h http.Handler, target string, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// csrfToken loads the landing page and returns the issued token.
func csrfToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := get(t, h, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c := cookie(rec, csrfCookie)
	require.NotNil(t, c)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	hidden, ok := doc.Find(`#contact-body input[name="_csrf"]`).Attr("value")
	require.True(t, ok)
	require.Equal(t, c.Value, hidden)
	return c.Value
}

func postContact(t *testing.T, h http.Handler, token string, form url.Values, setup func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		form.Set("_csrf", token)
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookie, Value: token})
	}
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthzOK(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestHomeNegotiatesLanguageAndPersistsIt(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/", func(r *http.Request) {
		r.Header.Set("Accept-Language", "es-MX,es;q=0.9")
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "es", rec.Header().Get("Content-Language"))
	require.Contains(t, rec.Header().Values("Vary"), "Accept-Language")

	c := cookie(rec, prefs.LanguageKey)
	require.NotNil(t, c)
	require.Equal(t, "es", c.Value)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "es", lang)
	require.Equal(t, "Inicio", strings.TrimSpace(doc.Find(".nav-links a").First().Text()))
	require.Equal(t, "ES", strings.TrimSpace(doc.Find(".nav-actions .lang-option.is-active").Text()))
}

func TestHomeFallsBackToEnglish(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/", func(r *http.Request) {
		r.Header.Set("Accept-Language", "fr-FR")
	})
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "en", lang)
	require.Equal(t, "Home", strings.TrimSpace(doc.Find(".nav-links a").First().Text()))
}

func TestHomePersistedLanguageWins(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/", func(r *http.Request) {
		r.Header.Set("Accept-Language", "es")
		r.AddCookie(&http.Cookie{Name: prefs.LanguageKey, Value: "en"})
	})
	require.Equal(t, "en", rec.Header().Get("Content-Language"))
	require.Nil(t, cookie(rec, prefs.LanguageKey))
}

func TestHomeUnsupportedLanguageRendersKeys(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/?hl=fr", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	c := cookie(rec, prefs.LanguageKey)
	require.NotNil(t, c)
	require.Equal(t, "fr", c.Value)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "fr", lang)
	require.Equal(t, "nav.home", strings.TrimSpace(doc.Find(".nav-links a").First().Text()))
	require.Equal(t, 0, doc.Find(".nav-actions .lang-option.is-active").Length())
}

func TestLanguageSwitchViaQuery(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/?hl=es", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: prefs.LanguageKey, Value: "en"})
	})
	require.Equal(t, "es", rec.Header().Get("Content-Language"))
	c := cookie(rec, prefs.LanguageKey)
	require.NotNil(t, c)
	require.Equal(t, "es", c.Value)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	hrefs := map[string]string{}
	doc.Find(".nav-actions .lang-option").Each(func(_ int, s *goquery.Selection) {
		code, _ := s.Attr("hreflang")
		href, _ := s.Attr("href")
		hrefs[code] = href
	})
	require.Equal(t, map[string]string{"en": "/?hl=en", "es": "/?hl=es"}, hrefs)
}

func TestThemeDefaultsDarkAndToggles(t *testing.T) {
	h := testutil.NewHandler(t)

	rec := get(t, h, "/", nil)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	theme, _ := doc.Find("html").Attr("data-theme")
	require.Equal(t, "dark", theme)
	toggle, _ := doc.Find(".nav-actions .theme-toggle").Attr("href")
	require.Equal(t, "/?theme=light", toggle)

	rec = get(t, h, toggle, nil)
	c := cookie(rec, prefs.ThemeKey)
	require.NotNil(t, c)
	require.Equal(t, "light", c.Value)
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	theme, _ = doc.Find("html").Attr("data-theme")
	require.Equal(t, "light", theme)

	rec = get(t, h, "/", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: prefs.ThemeKey, Value: "light"})
	})
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	theme, _ = doc.Find("html").Attr("data-theme")
	require.Equal(t, "light", theme)
}

func TestHomeSectionsAndReveal(t *testing.T) {
	h := testutil.NewHandler(t, testutil.WithNow(time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)))

	rec := get(t, h, "/", nil)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	var ids []string
	doc.Find("section[data-reveal]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
		require.False(t, s.HasClass("is-visible"), id)
		th, _ := s.Attr("data-reveal-threshold")
		require.Equal(t, "0.2", th)
	})
	require.Equal(t, []string{"hero", "motivation", "collaboration", "contact"}, ids)

	require.Equal(t, 3, doc.Find("#motivation .stat").Length())
	require.Equal(t, 4, doc.Find("#collaboration .feature").Length())
	require.Equal(t, 5, doc.Find("#collaboration .role").Length())
	require.Contains(t, doc.Find("footer").Text(), "2027")
	gh, _ := doc.Find(`footer a[href="https://github.com/rescathena"]`).Attr("href")
	require.NotEmpty(t, gh)

	rec = get(t, h, "/", func(r *http.Request) {
		r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	})
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 4, doc.Find("section[data-reveal].is-visible").Length())
}

func TestHomeSEO(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/", func(r *http.Request) {
		r.Header.Set("Accept-Language", "es")
	})
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "https://rescathena.com/", canonical)
	require.Equal(t, 3, doc.Find(`link[rel="alternate"][hreflang]`).Length())
	locale, _ := doc.Find(`meta[property="og:locale"]`).Attr("content")
	require.Equal(t, "es_ES", locale)
	require.Equal(t, 2, doc.Find(`script[type="application/ld+json"]`).Length())
	require.Contains(t, doc.Find(`script[type="application/ld+json"]`).First().Text(), `"@type":"Organization"`)
}

func TestContactSubmitShowsThankYou(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := testutil.NewHandler(t, testutil.WithLogger(zap.New(core)))
	token := csrfToken(t, h)

	rec := postContact(t, h, token, url.Values{
		"name":      {"Ada"},
		"email":     {"ada@example.org"},
		"message":   {"Count me in"},
		"subscribe": {"on"},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 1, doc.Find("#contact-body .contact-success").Length())
	require.Equal(t, 0, doc.Find("#contact-body form").Length())
	require.True(t, doc.Find("#contact").HasClass("is-visible"))
	href, _ := doc.Find(".nav-actions .lang-option").First().Attr("href")
	require.True(t, strings.HasPrefix(href, "/?"), href)

	entries := logs.FilterMessage("contact form submitted").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "Ada", fields["name"])
	require.Equal(t, "ada@example.org", fields["email"])
	require.Equal(t, "Count me in", fields["message"])
	require.Equal(t, true, fields["subscribe"])
	require.Equal(t, "en", fields["lang"])
	require.NotEmpty(t, fields["submission_id"])
}

func TestContactSubmitHTMXFragment(t *testing.T) {
	h := testutil.NewHandler(t)
	token := csrfToken(t, h)

	rec := postContact(t, h, token, url.Values{
		"name":  {"Ada"},
		"email": {"ada@example.org"},
	}, func(r *http.Request) {
		r.Header.Set("HX-Request", "true")
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.NotContains(t, body, "<html")
	require.Contains(t, body, "contact-success")
}

func TestContactSubmitInvalid(t *testing.T) {
	h := testutil.NewHandler(t)
	token := csrfToken(t, h)

	rec := postContact(t, h, token, url.Values{
		"name":    {""},
		"email":   {"not-an-email"},
		"message": {"hello"},
	}, func(r *http.Request) {
		r.Header.Set("HX-Request", "true")
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 2, doc.Find(".field-error").Length())
	v, _ := doc.Find(`input[name="email"]`).Attr("value")
	require.Equal(t, "not-an-email", v)
	require.Equal(t, "hello", doc.Find(`textarea[name="message"]`).Text())
	invalid, _ := doc.Find(`input[name="name"]`).Attr("aria-invalid")
	require.Equal(t, "true", invalid)
}

func TestContactRequiresCSRF(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := postContact(t, h, "", url.Values{
		"name":  {"Ada"},
		"email": {"ada@example.org"},
	}, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

type failingSink struct{}

func (failingSink) Submit(context.Context, contact.Submission) error {
	return errors.New("unavailable")
}

func TestContactSinkFailure(t *testing.T) {
	h := testutil.NewHandler(t, testutil.WithSink(failingSink{}))
	token := csrfToken(t, h)
	rec := postContact(t, h, token, url.Values{
		"name":  {"Ada"},
		"email": {"ada@example.org"},
	}, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPrivacyPageLocalized(t *testing.T) {
	h := testutil.NewHandler(t)

	rec := get(t, h, "/privacy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Privacy notice", strings.TrimSpace(doc.Find(".prose h1").Text()))
	require.Equal(t, "Privacy notice | RESCATHENA", doc.Find("title").Text())
	back, _ := doc.Find(".nav-links a").Eq(1).Attr("href")
	require.Equal(t, "/#motivation", back)

	rec = get(t, h, "/privacy?hl=es", nil)
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Aviso de privacidad", strings.TrimSpace(doc.Find(".prose h1").Text()))
	require.Equal(t, "15 de enero de 2026", doc.Find("article time").Text())
}

func TestAssetsServed(t *testing.T) {
	h := testutil.NewHandler(t)
	rec := get(t, h, "/assets/app.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	require.NotEmpty(t, rec.Header().Get("ETag"))

	rec = get(t, h, "/assets/app.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "IntersectionObserver")
}

func TestServerOverHTTP(t *testing.T) {
	ts := testutil.NewServer(t)
	res, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Type"), "text/html")
}
