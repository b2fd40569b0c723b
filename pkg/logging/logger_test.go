package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		enable slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"warn level", "warn", slog.LevelWarn},
		{"upper case", "ERROR", slog.LevelError},
		{"default info", "", slog.LevelInfo},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			if !logger.Enabled(ctx, tt.enable) {
				t.Fatalf("expected level %s to be enabled", tt.enable)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()
	logger.Info("test message", "key", "value")

	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("Default() should enable info level")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("Default() should not enable debug level")
	}
	if Default() == logger {
		t.Error("Default() returned the same instance twice")
	}
}

func TestNewWithOptionsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Level: "info", Output: &buf})
	logger.With("component", "test").Info("hello", "appointment_id", "appointment-1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output: %v", err)
	}
	if entry["component"] != "test" || entry["appointment_id"] != "appointment-1" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewWithOptionsText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Level: "debug", Format: "text", Output: &buf})
	logger.Debug("slots computed", "count", 14)

	if !strings.Contains(buf.String(), "count=14") {
		t.Fatalf("expected text output, got %q", buf.String())
	}
}
