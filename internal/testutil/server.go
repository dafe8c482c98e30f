package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"rescathena.com/web/internal/config"
	"rescathena.com/web/internal/contact"
	"rescathena.com/web/internal/httpserver"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithLogger routes request and contact logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithSink replaces the contact sink.
func WithSink(sink contact.Sink) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Sink = sink
	}
}

// WithNow pins the clock used for footer years and submission timestamps.
func WithNow(now time.Time) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Now = func() time.Time { return now }
	}
}

// WithEnv loads the app configuration from env instead of the test defaults.
func WithEnv(t testing.TB, env map[string]string) ServerOption {
	t.Helper()
	app, err := config.Load(config.WithEnvMap(env))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return func(cfg *httpserver.Config) {
		cfg.App = app
	}
}

// NewHandler builds the web router with embedded templates and assets.
func NewHandler(t testing.TB, opts ...ServerOption) http.Handler {
	t.Helper()

	app, err := config.Load(config.WithEnvMap(map[string]string{
		"RESCATHENA_WEB_ENV":      "test",
		"RESCATHENA_WEB_BASE_URL": "https://rescathena.com",
	}))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg := httpserver.Config{App: app}
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := httpserver.NewHandler(cfg)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

// NewServer constructs an httptest server running the web HTTP stack.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewHandler(t, opts...))
	t.Cleanup(ts.Close)
	return ts
}
