package logging

import (
	"fmt"
	"strings"

	"github.com/ppiankov/civiclens/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// parseLevel converts a level name to a zapcore.Level.
// Unknown values fall back to warn, which keeps CLI output quiet.
func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// New builds the process logger. Logs always go to stderr; stdout carries results.
func New(cfg model.LogConfig) (*zap.Logger, error) {
	var encCfg zapcore.EncoderConfig
	encoding := "json"
	if cfg.Format == "console" {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoding = "console"
	} else {
		encCfg = zap.NewProductionEncoderConfig()
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Encoding:          encoding,
		EncoderConfig:     encCfg,
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to build zap logger: %w", err)
	}
	return logger.Named("civiclens"), nil
}

// Must is New for command setup, falling back to a no-op logger on failure
func Must(cfg model.LogConfig) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
