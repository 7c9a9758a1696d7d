package config

import (
	"encoding/json"
	"os"
	"time"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts
// are given as duration strings like "15s".
type JsonConfig struct {
	ServerBaseURL  string `json:"server_base_url"`
	TokenPath      string `json:"token_path"`
	RequestTimeout string `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// the -c or -config flag. With no such flag it is a no-op. Read or
// unmarshal errors panic, startup has nothing to fall back to.
func parseJson(cfg *Config) {
	jsonConfigFile := jsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.TokenPath != "" {
		cfg.TokenPath = jc.TokenPath
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
