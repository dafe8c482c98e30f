package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"rescathena.com/web/internal/prefs"
	"rescathena.com/web/internal/reveal"
)

const envPrefix = "RESCATHENA_WEB_"

// Config captures the web server's runtime configuration.
type Config struct {
	// Port prefers RESCATHENA_WEB_PORT, then Cloud Run's PORT.
	Port            string        `env:"PORT"`
	CloudRunPort    string
	Dev             bool          `env:"DEV"`
	Environment     string        `env:"ENV" envDefault:"local"`
	BaseURL         string        `env:"BASE_URL"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DefaultTheme    string        `env:"DEFAULT_THEME" envDefault:"dark"`
	FallbackLang    string        `env:"FALLBACK_LANGUAGE" envDefault:"en"`
	RevealThreshold float64       `env:"REVEAL_THRESHOLD" envDefault:"0.2"`
	CookieSecure    bool          `env:"COOKIE_SECURE"`
	TemplatesDir    string        `env:"TEMPLATES_DIR" envDefault:"templates"`
	PublicDir       string        `env:"PUBLIC_DIR"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ValidationError is returned when configuration values are invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*env.Options)

// WithEnvMap replaces the process environment with values (used by tests).
func WithEnvMap(values map[string]string) Option {
	return func(o *env.Options) {
		o.Environment = values
	}
}

// Load parses RESCATHENA_WEB_* variables and validates the result.
func Load(opts ...Option) (Config, error) {
	options := env.Options{Prefix: envPrefix}
	for _, opt := range opts {
		opt(&options)
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, options); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	// Cloud Run injects an unprefixed PORT.
	raw := struct {
		Port string `env:"PORT" envDefault:"8080"`
	}{}
	if err := env.ParseWithOptions(&raw, env.Options{Environment: options.Environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CloudRunPort = raw.Port

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c Config) Validate() error {
	var fields []string
	if _, ok := prefs.ParseTheme(c.DefaultTheme); !ok {
		fields = append(fields, envPrefix+"DEFAULT_THEME")
	}
	if c.RevealThreshold <= 0 || c.RevealThreshold > 1 {
		fields = append(fields, envPrefix+"REVEAL_THRESHOLD")
	}
	if strings.TrimSpace(c.FallbackLang) == "" {
		fields = append(fields, envPrefix+"FALLBACK_LANGUAGE")
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		fields = append(fields, envPrefix+"BASE_URL")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = c.CloudRunPort
	}
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// Theme returns the configured default theme.
func (c Config) Theme() prefs.Theme {
	if t, ok := prefs.ParseTheme(c.DefaultTheme); ok {
		return t
	}
	return prefs.Dark
}

// Threshold returns the reveal threshold, defaulting when unset.
func (c Config) Threshold() float64 {
	if c.RevealThreshold <= 0 || c.RevealThreshold > 1 {
		return reveal.DefaultThreshold
	}
	return c.RevealThreshold
}

// IsProd reports whether cookies must be marked Secure regardless of COOKIE_SECURE.
func (c Config) IsProd() bool {
	return strings.EqualFold(c.Environment, "prod") || strings.EqualFold(c.Environment, "production")
}

// SecureCookies reports whether preference cookies carry the Secure flag.
func (c Config) SecureCookies() bool { return c.CookieSecure || c.IsProd() }
