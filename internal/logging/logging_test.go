package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("value set", "path", "Movement.Speed")

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if parsed["msg"] != "value set" {
		t.Errorf("msg = %v", parsed["msg"])
	}
	if parsed["path"] != "Movement.Speed" {
		t.Errorf("path = %v", parsed["path"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	logger.Warn("transform vetoed value", "path", "Fly.Speed", "reason", "too fast")

	output := buf.String()
	for _, want := range []string{"WARN", "transform vetoed value", "path=Fly.Speed", `reason="too fast"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
	if strings.Contains(output, "\x1b[") {
		t.Error("buffer output should not be colorized")
	}
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("records below Warn should be dropped, got %q", buf.String())
	}

	logger.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Error should be written, got %q", buf.String())
	}
}

func TestHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf}).With("tree", "Features").WithGroup("value")

	logger.Info("changed", "name", "Speed", slog.Group("bounds", "from", 0, "to", 10))

	output := buf.String()
	for _, want := range []string{"tree=Features", "value.name=Speed", "value.bounds.from=0", "value.bounds.to=10"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Error("JSON should parse as FormatJSON")
	}
	if ParseFormat("pretty") != FormatText {
		t.Error("unknown formats should fall back to text")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) should return a logger")
	}
	l := ForTest(t)
	if OrDiscard(l) != l {
		t.Error("OrDiscard should keep a non-nil logger")
	}
	l.Debug("captured in test log")
}

func TestSupportsColor(t *testing.T) {
	t.Setenv("TERM", "xterm")

	t.Setenv("NO_COLOR", "1")
	if supportsColor(true) {
		t.Error("NO_COLOR should disable color")
	}
}

func TestSupportsColor_Dumb(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if supportsColor(true) {
		t.Error("TERM=dumb should disable color")
	}
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
