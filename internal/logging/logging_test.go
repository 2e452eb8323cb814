package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	quiet, err := New(false)
	if err != nil {
		t.Fatalf("building logger: %v", err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug disabled without verbose")
	}

	loud, err := New(true)
	if err != nil {
		t.Fatalf("building logger: %v", err)
	}
	if !loud.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug enabled with verbose")
	}
}
