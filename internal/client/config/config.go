package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/beehive-drones/admin/internal/logging"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BEEHIVE_"

// Config holds runtime settings for the admin CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST API, e.g. http://127.0.0.1:8000/api.
//   - SessionDB: path of the SQLite file holding the persisted session.
//   - RequestsPerSecond: client-side pacing of API calls; 0 disables it.
//   - LogLevel, LogFormat, LogBackend: passed to logging.New.
type Config struct {
	APIBaseURL        string  `json:"api_base_url" yaml:"api_base_url" env:"API_BASE_URL"`
	SessionDB         string  `json:"session_db" yaml:"session_db" env:"SESSION_DB"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" env:"REQUESTS_PER_SECOND"`
	LogLevel          string  `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat         string  `json:"log_format" yaml:"log_format" env:"LOG_FORMAT"`
	LogBackend        string  `json:"log_backend" yaml:"log_backend" env:"LOG_BACKEND"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.SessionDB = "session.db"
	c.RequestsPerSecond = 0
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.LogBackend = "slog"
}

// LoggingOptions returns the logger settings carried by c.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Backend: c.LogBackend, Level: c.LogLevel, Format: c.LogFormat}
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_base_url: %q is not an http(s) URL", c.APIBaseURL))
	}
	if strings.TrimSpace(c.SessionDB) == "" {
		errs = append(errs, errors.New("session_db: must not be empty"))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("requests_per_second: %v is negative", c.RequestsPerSecond))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}
	switch strings.ToLower(c.LogBackend) {
	case "slog", "zap":
	default:
		errs = append(errs, fmt.Errorf("log_backend: unknown backend %q", c.LogBackend))
	}

	return errors.Join(errs...)
}

// Load constructs a Config, applies defaults, then overlays the config file
// (if any), the BEEHIVE_* environment and the flags the user set on fs.
// Later sources take precedence over earlier ones.
//
// environ is the environment as a map; nil means the process environment.
// fs may be nil when no flags are in play.
func Load(fs *pflag.FlagSet, environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = processEnv()
	}

	cfg := &Config{}
	cfg.LoadDefaults()

	if path := configPath(fs, environ); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func configPath(fs *pflag.FlagSet, environ map[string]string) string {
	if fs != nil {
		if f := fs.Lookup(flagConfig); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	return environ[EnvPrefix+"CONFIG"]
}
