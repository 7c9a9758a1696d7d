// Package config holds runtime settings for the wallet CLI.
package config

import "time"

// Config holds runtime settings for the wallet CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the wallet backend.
//   - TokenPath: override for the persisted token file; empty means the
//     per-user default under the OS config directory.
//   - RequestTimeout: deadline applied to each API call.
type Config struct {
	ServerBaseURL  string
	TokenPath      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3000"
	c.TokenPath = ""
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
