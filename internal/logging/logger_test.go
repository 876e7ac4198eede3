package logging

import (
	"testing"

	"github.com/ppiankov/civiclens/internal/model"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.WarnLevel,
		"":        zapcore.WarnLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := New(model.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("%s logger: expected debug enabled", format)
		}
	}

	logger := Must(model.LogConfig{Level: "error"})
	if logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("expected warn disabled at error level")
	}
}
