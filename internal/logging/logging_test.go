package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewConsoleLoggerWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("backup created", slog.String("site", "main"), slog.Int("size", 512))

	line := buf.String()
	for _, want := range []string{"INFO", "backup created", "site=main", "size=512"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be suppressed at warn level: %q", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("warn suppressed: %q", buf.String())
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("run complete", slog.String("site", "variant"))
	if !strings.Contains(buf.String(), `"site":"variant"`) {
		t.Fatalf("json output missing attr: %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if parseLevel("chatty") != slog.LevelInfo {
		t.Fatal("unknown level should map to info")
	}
}
