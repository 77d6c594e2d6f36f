// Package config loads runtime configuration for the admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config or BEEHIVE_CONFIG.
//     ".yaml"/".yml" files are read as YAML, anything else as JSON.
//  3. BEEHIVE_* environment variables (BEEHIVE_API_BASE_URL, BEEHIVE_LOG_LEVEL, ...).
//  4. Command-line flags the user actually set (see BindFlags).
//
// # File schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api",
//	  "session_db": "session.db",
//	  "requests_per_second": 5,
//	  "log_level": "info",
//	  "log_format": "json",
//	  "log_backend": "zap"
//	}
//
// Load finishes with (*Config).Validate, so callers always get a usable Config
// or an error naming every bad field.
package config
