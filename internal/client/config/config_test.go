package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000", c.ServerBaseURL)
	assert.Empty(t, c.TokenPath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"wallet"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:3000", cfg.ServerBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseJsonOverlaysFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	raw, err := json.Marshal(JsonConfig{
		ServerBaseURL:  "https://pay.vornexz.com",
		TokenPath:      "/tmp/vornexz-token",
		RequestTimeout: "30s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"wallet", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "https://pay.vornexz.com", cfg.ServerBaseURL)
	assert.Equal(t, "/tmp/vornexz-token", cfg.TokenPath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseEnvOverlaysFields(t *testing.T) {
	t.Setenv("VORNEXZ_SERVER_URL", "https://env.vornexz.com")
	t.Setenv("VORNEXZ_TOKEN_PATH", "/tmp/env-token")
	t.Setenv("VORNEXZ_REQUEST_TIMEOUT", "45s")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "https://env.vornexz.com", cfg.ServerBaseURL)
	assert.Equal(t, "/tmp/env-token", cfg.TokenPath)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestParseEnvKeepsValuesWhenUnset(t *testing.T) {
	t.Setenv("VORNEXZ_SERVER_URL", "")
	t.Setenv("VORNEXZ_TOKEN_PATH", "")

	var cfg Config
	cfg.LoadDefaults()
	cfg.ServerBaseURL = "https://json.vornexz.com"
	parseEnv(&cfg)

	assert.Equal(t, "https://json.vornexz.com", cfg.ServerBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("VORNEXZ_SERVER_URL", "https://env.vornexz.com")

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"wallet", "-a", "https://flag.vornexz.com"}

	cfg := LoadConfig()

	assert.Equal(t, "https://flag.vornexz.com", cfg.ServerBaseURL)
}

func TestParseFlagsOverridesJson(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"wallet", "-a", "https://staging.vornexz.com", "-t", "/tmp/tok"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, "https://staging.vornexz.com", cfg.ServerBaseURL)
	assert.Equal(t, "/tmp/tok", cfg.TokenPath)
}

func TestFilterArgsKeepsOnlyAllowed(t *testing.T) {
	args := []string{"-a", "http://x", "-unknown", "zzz", "--config=conf.json", "-t=/tmp/tok"}

	got := filterArgs(args, []string{"-a", "-t", "--config"})

	assert.Equal(t, []string{"-a", "http://x", "--config=conf.json", "-t=/tmp/tok"}, got)
}
