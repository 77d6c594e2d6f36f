package logging

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.SugaredLogger to Logger. The context is accepted for
// interface symmetry; zap does not read values from it.
type ZapLogger struct {
	l *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l: l.Sugar()}
}

func newZapLogger(w io.Writer, level slog.Level, format string) (*ZapLogger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if strings.EqualFold(format, "json") {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapLevel(level))
	return NewZapLogger(zap.New(core)), nil
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l <= slog.LevelDebug:
		return zapcore.DebugLevel
	case l <= slog.LevelInfo:
		return zapcore.InfoLevel
	case l <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// scrub replaces the value of every credential key in a sugared key-value
// list. Non-string keys are left to zap.
func scrub(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok && isSecret(k) {
			if out == nil {
				out = slices.Clone(args)
			}
			out[i+1] = redactedValue
		}
	}
	if out == nil {
		return args
	}
	return out
}

func (z *ZapLogger) Debug(_ context.Context, msg string, args ...any) {
	z.l.Debugw(msg, scrub(args)...)
}

func (z *ZapLogger) Info(_ context.Context, msg string, args ...any) { z.l.Infow(msg, scrub(args)...) }

func (z *ZapLogger) Warn(_ context.Context, msg string, args ...any) { z.l.Warnw(msg, scrub(args)...) }

func (z *ZapLogger) Error(_ context.Context, msg string, args ...any) {
	z.l.Errorw(msg, scrub(args)...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(scrub(args)...)}
}
