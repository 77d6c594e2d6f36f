package fakeapi

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the fake backend.
//
// Fields:
//   - Addr: listen address of the HTTP server.
//   - SecretKey: HMAC secret for signing tokens. Empty means a random one per run.
//   - TokenTTL: lifetime of issued tokens.
//   - AdminEmail / AdminPassword: the one seeded operator account.
//   - PerPage: page size of the paginated product list.
//   - Seed: whether to start with sample records.
type Config struct {
	Addr          string        `env:"ADDR" envDefault:"127.0.0.1:8000"`
	SecretKey     string        `env:"SECRET_KEY"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	AdminEmail    string        `env:"ADMIN_EMAIL" envDefault:"admin@beehive.id"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"beehive"`
	PerPage       int           `env:"PER_PAGE" envDefault:"10"`
	Seed          bool          `env:"SEED" envDefault:"true"`
}

// LoadConfig parses FAKEAPI_* variables from environ over the defaults.
// A nil environ means the process environment.
func LoadConfig(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: "FAKEAPI_"}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("fakeapi: failed to parse environment variables: %w", err)
	}
	if cfg.PerPage < 1 {
		return nil, fmt.Errorf("fakeapi: per page must be positive, got %d", cfg.PerPage)
	}
	return cfg, nil
}
