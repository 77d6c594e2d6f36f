package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8000/api", c.APIBaseURL)
	assert.Equal(t, "session.db", c.SessionDB)
	assert.Zero(t, c.RequestsPerSecond)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(newFlags(t), map[string]string{})
	require.NoError(t, err)

	want := defaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"api_base_url": "http://file.example/api",
		"session_db": "file.db",
		"log_level": "debug",
		"requests_per_second": 2
	}`)

	environ := map[string]string{
		"BEEHIVE_SESSION_DB": "env.db",
		"BEEHIVE_LOG_LEVEL":  "error",
	}
	fs := newFlags(t, "-c", path, "--log-level", "info")

	cfg, err := Load(fs, environ)
	require.NoError(t, err)

	assert.Equal(t, "http://file.example/api", cfg.APIBaseURL, "file beats defaults")
	assert.Equal(t, "env.db", cfg.SessionDB, "env beats file")
	assert.Equal(t, "info", cfg.LogLevel, "flag beats env")
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, "slog", cfg.LogBackend, "untouched default")
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	environ := map[string]string{"BEEHIVE_API_BASE_URL": "https://env.example/api"}

	cfg, err := Load(newFlags(t), environ)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example/api", cfg.APIBaseURL)
}

func TestLoad_YAMLFromEnvPath(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "api_base_url: https://yaml.example/api\nlog_backend: zap\nlog_format: json\n")

	cfg, err := Load(nil, map[string]string{"BEEHIVE_CONFIG": path})
	require.NoError(t, err)

	assert.Equal(t, "https://yaml.example/api", cfg.APIBaseURL)
	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, "json", cfg.LoggingOptions().Format)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.json")), map[string]string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{ this is not valid json`)
		_, err := Load(newFlags(t, "-c", path), map[string]string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})

	t.Run("bad env value", func(t *testing.T) {
		_, err := Load(nil, map[string]string{"BEEHIVE_REQUESTS_PER_SECOND": "fast"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse environment")
	})

	t.Run("validation", func(t *testing.T) {
		fs := newFlags(t, "-a", "ftp://x", "--rps=-1", "--log-backend", "logrus")
		_, err := Load(fs, map[string]string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_base_url")
		assert.Contains(t, err.Error(), "requests_per_second")
		assert.Contains(t, err.Error(), "log_backend")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "https ok", mutate: func(c *Config) { c.APIBaseURL = "https://api.example.com/api" }},
		{name: "no host", mutate: func(c *Config) { c.APIBaseURL = "http://" }, wantErr: "api_base_url"},
		{name: "empty session db", mutate: func(c *Config) { c.SessionDB = " " }, wantErr: "session_db"},
		{name: "level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "log_level"},
		{name: "format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
