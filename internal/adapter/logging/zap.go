package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"slack-notifier/internal/domain/ports"
)

// ZapLogger is an adapter around zap.SugaredLogger implementing ports.Logger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

var _ ports.Logger = (*ZapLogger)(nil)

// New wraps an existing zap logger.
func New(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		return &ZapLogger{}
	}
	return &ZapLogger{logger: logger.Sugar()}
}

// NewZap builds a zap logger writing to stderr.
// level is one of debug, info, warn, error; format is json or console.
func NewZap(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("slack"), nil
}

// Info logs an informational message.
func (l *ZapLogger) Info(_ context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Infow(msg, args...)
}

// Warn logs a warning.
func (l *ZapLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Warnw(msg, args...)
}

// Error logs an error message.
func (l *ZapLogger) Error(_ context.Context, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Errorw(msg, args...)
}
