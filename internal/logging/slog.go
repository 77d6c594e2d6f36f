package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// SlogLogger writes through a log/slog handler.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an existing slog logger as is. Loggers built by New
// also redact secrets, see newSlogLogger.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// newSlogLogger builds a text or JSON handler on w. Attributes named like a
// credential are replaced with a placeholder before they reach w.
func newSlogLogger(w io.Writer, level slog.Level, format string) *SlogLogger {
	hopts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if isSecret(a.Key) {
				return slog.String(a.Key, redactedValue)
			}
			return a
		},
	}
	var h slog.Handler = slog.NewTextHandler(w, hopts)
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, hopts)
	}
	return NewSlogLogger(slog.New(h))
}

func (s *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.Log(ctx, level, msg, args...)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
