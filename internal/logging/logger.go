// Package logging defines the structured-logging interface used by the admin
// client. Implementations wrap log/slog or zap; the backend is picked from
// configuration by New.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "list loaded", "resource", "articles", "count", n)
type Logger interface {
	// Debug logs request-level tracing.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Options selects and tunes a Logger implementation.
type Options struct {
	Backend string // "slog" or "zap"
	Level   string // "debug", "info", "warn", "error"
	Format  string // "text" or "json"
}

// New builds a Logger writing to w according to opts.
func New(w io.Writer, opts Options) (Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(opts.Backend) {
	case "", "slog":
		return newSlogLogger(w, level, opts.Format), nil
	case "zap":
		return newZapLogger(w, level, opts.Format)
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

const redactedValue = "[redacted]"

// isSecret reports whether a log key names a credential. Such values are
// never written by loggers built with New.
func isSecret(key string) bool {
	switch strings.ToLower(key) {
	case "password", "token", "authorization", "secret", "secret_key":
		return true
	}
	return false
}

// ParseLevel maps a level name to slog.Level. An empty name means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
