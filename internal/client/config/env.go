package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is the overlay read from the environment. Unset variables
// leave the current values untouched.
type envConfig struct {
	ServerBaseURL  string        `env:"VORNEXZ_SERVER_URL"`
	TokenPath      string        `env:"VORNEXZ_TOKEN_PATH"`
	RequestTimeout time.Duration `env:"VORNEXZ_REQUEST_TIMEOUT"`
}

// parseEnv populates selected Config fields from environment variables:
//
//	VORNEXZ_SERVER_URL       base URL of the wallet backend
//	VORNEXZ_TOKEN_PATH       path of the persisted token file
//	VORNEXZ_REQUEST_TIMEOUT  per-request deadline, e.g. "30s"
func parseEnv(cfg *Config) {
	overlay := envConfig{}
	if err := env.Parse(&overlay); err != nil {
		panic(err)
	}

	if overlay.ServerBaseURL != "" {
		cfg.ServerBaseURL = overlay.ServerBaseURL
	}
	if overlay.TokenPath != "" {
		cfg.TokenPath = overlay.TokenPath
	}
	if overlay.RequestTimeout != 0 {
		cfg.RequestTimeout = overlay.RequestTimeout
	}
}
