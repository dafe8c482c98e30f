package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rescathena.com/web/internal/prefs"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(WithEnvMap(map[string]string{}))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, prefs.Dark, cfg.Theme())
	require.Equal(t, 0.2, cfg.Threshold())
	require.Equal(t, "en", cfg.FallbackLang)
	require.Equal(t, 15*time.Second, cfg.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.Dev)
	require.False(t, cfg.SecureCookies())
}

func TestLoadPortPrecedence(t *testing.T) {
	t.Parallel()

	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "9000"}))
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr())

	cfg, err = Load(WithEnvMap(map[string]string{"PORT": "9000", "RESCATHENA_WEB_PORT": "7000"}))
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := Load(WithEnvMap(map[string]string{
		"RESCATHENA_WEB_DEV":              "true",
		"RESCATHENA_WEB_ENV":              "prod",
		"RESCATHENA_WEB_DEFAULT_THEME":    "light",
		"RESCATHENA_WEB_REVEAL_THRESHOLD": "0.5",
		"RESCATHENA_WEB_BASE_URL":         "https://rescathena.com",
		"RESCATHENA_WEB_READ_TIMEOUT":     "3s",
	}))
	require.NoError(t, err)
	require.True(t, cfg.Dev)
	require.True(t, cfg.SecureCookies())
	require.Equal(t, prefs.Light, cfg.Theme())
	require.Equal(t, 0.5, cfg.Threshold())
	require.Equal(t, 3*time.Second, cfg.ReadTimeout)
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	_, err := Load(WithEnvMap(map[string]string{
		"RESCATHENA_WEB_DEFAULT_THEME":    "sepia",
		"RESCATHENA_WEB_REVEAL_THRESHOLD": "2",
		"RESCATHENA_WEB_BASE_URL":         "rescathena.com",
	}))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.ElementsMatch(t, []string{
		"RESCATHENA_WEB_DEFAULT_THEME",
		"RESCATHENA_WEB_REVEAL_THRESHOLD",
		"RESCATHENA_WEB_BASE_URL",
	}, verr.Fields())
}

func TestLoadRejectsUnparsableValues(t *testing.T) {
	t.Parallel()

	_, err := Load(WithEnvMap(map[string]string{"RESCATHENA_WEB_READ_TIMEOUT": "soon"}))
	require.Error(t, err)
}
