// Package observability owns process-wide logging handles.
//
// Loggers are initialized once at startup and treated as read-only handles
// afterwards; handlers and services receive them by injection or use the
// package-level Logger for code without a natural injection point.
package observability

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger. It defaults to a no-op
// logger so packages can log before Init without nil checks.
var Logger = zap.NewNop()

// LoggingConfig selects log level and output encoding.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is "json" for machine-readable output or "console" for
	// local development.
	Format string
}

// Init builds and installs the process logger.
func Init(cfg LoggingConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(cfg.Format, "console") {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	Logger = logger
	return logger, nil
}

// Sync flushes buffered log entries. Safe to call on a no-op logger.
func Sync() {
	_ = Logger.Sync()
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %q", s)
	}
}
