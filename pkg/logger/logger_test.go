package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "agent"})

	log.Info("turn handled", "intent", "booking")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record[SERVICE] != "agent" {
		t.Errorf("expected service attr 'agent', got %v", record[SERVICE])
	}
	if record["intent"] != "booking" {
		t.Errorf("expected intent attr 'booking', got %v", record["intent"])
	}
}

func TestNew_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TEXT, Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing to see")
	log.With("k", "v").Info("still nothing")
}
