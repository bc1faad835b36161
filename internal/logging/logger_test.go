package logging_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lineup/internal/logging"
)

func TestNewConsoleWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("reconcile finished", logging.Int("added", 3), logging.String("festival", "dtrh"))

	line := buf.String()
	for _, want := range []string{"INFO", "reconcile finished", "added=3", "festival=dtrh"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Error("save failed", logging.Error(errors.New("disk full")))
	if !strings.Contains(buf.String(), `"disk full"`) {
		t.Fatalf("json output = %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatal("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Fatal("warn line missing")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing happens")
}
