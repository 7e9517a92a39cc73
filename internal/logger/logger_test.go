package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
		{"warn doesn't log at error level", "error", "warn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.configLevel, &buf).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestOutputGoesToWriter(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := New("info", &buf)

	log.Info(ctx, "queued %d items", 3)
	log.Debug(ctx, "should be filtered")

	out := buf.String()
	if !strings.Contains(out, "[INFO] queued 3 items") {
		t.Errorf("output = %q, want INFO line", out)
	}
	if strings.Contains(out, "filtered") {
		t.Errorf("debug line should be filtered at info level: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	log := Discard()

	// Must not panic
	log.Debug(ctx, "a")
	log.Info(ctx, "b")
	log.Warn(ctx, "c")
	log.Error(ctx, "d %v", 1)
}
