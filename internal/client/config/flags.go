package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig     = "config"
	flagAPI        = "api"
	flagSessionDB  = "session-db"
	flagRPS        = "rps"
	flagLogLevel   = "log-level"
	flagLogFormat  = "log-format"
	flagLogBackend = "log-backend"
)

// BindFlags registers the configuration flags on fs. Their defaults are only
// shown in help output: Load applies a flag only when the user set it.
//
//	-c, --config string       JSON or YAML config file
//	-a, --api string          REST API base URL
//	    --session-db string   session database file
//	    --rps float           API requests per second (0 = unlimited)
//	    --log-level string    debug, info, warn or error
//	    --log-format string   text or json
//	    --log-backend string  slog or zap
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "JSON or YAML config file (env "+EnvPrefix+"CONFIG)")
	fs.StringP(flagAPI, "a", d.APIBaseURL, "REST API base URL")
	fs.String(flagSessionDB, d.SessionDB, "session database file")
	fs.Float64(flagRPS, d.RequestsPerSecond, "API requests per second (0 = unlimited)")
	fs.String(flagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.String(flagLogFormat, d.LogFormat, "log format: text or json")
	fs.String(flagLogBackend, d.LogBackend, "log backend: slog or zap")
}

// applyFlags copies every flag the user explicitly set into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	strs := map[string]*string{
		flagAPI:        &cfg.APIBaseURL,
		flagSessionDB:  &cfg.SessionDB,
		flagLogLevel:   &cfg.LogLevel,
		flagLogFormat:  &cfg.LogFormat,
		flagLogBackend: &cfg.LogBackend,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(flagRPS) {
		v, err := fs.GetFloat64(flagRPS)
		if err != nil {
			return err
		}
		cfg.RequestsPerSecond = v
	}
	return nil
}
