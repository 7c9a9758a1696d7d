package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server runtime configuration, populated from the
// environment with optional .env overrides
type Config struct {
	Port int    `env:"PORT" envDefault:"8000"`
	DSN  string `env:"DATABASE_DSN" envDefault:"file:vornexz.db?cache=shared"`

	SigningKey      string   `env:"JWT_SIGNING_KEY,required"`
	TokenExpiration int      `env:"JWT_EXPIRATION_HOURS" envDefault:"24"`
	Issuer          string   `env:"JWT_ISSUER" envDefault:"vornexz-pay"`
	Audience        []string `env:"JWT_AUDIENCE" envSeparator:","`
	TokenLookup     string   `env:"JWT_TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme      string   `env:"JWT_AUTH_SCHEME" envDefault:"Bearer"`
	ContextKey      string   `env:"JWT_CONTEXT_KEY" envDefault:"user"`
	// JWKSetURLs switches token verification to remote JWK Sets, for
	// deployments where an external identity provider issues the tokens.
	JWKSetURLs []string `env:"JWT_JWK_SET_URLS" envSeparator:","`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@vornexz.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	SeedDemoData  bool   `env:"SEED_DEMO_DATA" envDefault:"false"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env if present, then parses the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) GetSigningKey() string    { return c.SigningKey }
func (c *Config) GetSigningMethod() string { return "HS256" }
func (c *Config) GetContextKey() string    { return c.ContextKey }
func (c *Config) GetTokenExpiration() int  { return c.TokenExpiration }
func (c *Config) GetTokenLookup() string   { return c.TokenLookup }
func (c *Config) GetAuthScheme() string    { return c.AuthScheme }
func (c *Config) GetIssuer() string        { return c.Issuer }
func (c *Config) GetAudience() []string    { return c.Audience }
