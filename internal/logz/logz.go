package logz

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKeyType uint64

const loggerContextKey loggerContextKeyType = 1618033988749894848

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext returns the context logger, or a no-op logger when there is none.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && log != nil {
		return log
	}
	return zap.NewNop()
}

// New builds a stderr console logger at the given level.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Sync is useful for when you want to use defer logger.Sync and do not want to handle errors.
func Sync(logger *zap.Logger) {
	_ = logger.Sync() // nolint
}

// ValidLevel reports whether level parses as a zap level.
func ValidLevel(level string) bool {
	_, err := zapcore.ParseLevel(level)
	return err == nil
}
