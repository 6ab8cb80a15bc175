package analysis

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewLoggerJSON(t *testing.T) {
	config := DefaultConfig()
	config.LogFormat = "json"
	config.LogLevel = "warn"

	var buf bytes.Buffer
	logger := config.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "location", "Murmansk")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line at warn level, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", lines[0], err)
	}
	if record["msg"] != "shown" || record["location"] != "Murmansk" {
		t.Errorf("Unexpected record: %v", record)
	}
	runID, _ := record["run_id"].(string)
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("Expected a UUID run_id, got %q", runID)
	}
}

func TestNewLoggerText(t *testing.T) {
	config := DefaultConfig()
	config.LogLevel = "debug"

	var buf bytes.Buffer
	config.NewLogger(&buf).Debug("processing location", "index", 1)

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "index=1") {
		t.Errorf("Unexpected text log output: %q", out)
	}
}

func TestOpenLoggerFile(t *testing.T) {
	config := DefaultConfig()
	config.LogFile = filepath.Join(t.TempDir(), "daylight.log")

	var buf bytes.Buffer
	logger, closeLog, err := config.OpenLogger(&buf)
	if err != nil {
		t.Fatalf("OpenLogger returned error: %v", err)
	}
	logger.Info("catalog loaded", "kept", 3)
	if err := closeLog(); err != nil {
		t.Fatalf("Failed to close log file: %v", err)
	}

	data, err := os.ReadFile(config.LogFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "catalog loaded") {
		t.Errorf("Expected message in log file, got %q", data)
	}
	if !strings.Contains(buf.String(), "catalog loaded") {
		t.Errorf("Expected message on console, got %q", buf.String())
	}
}

func TestOpenLoggerConsoleOnly(t *testing.T) {
	config := DefaultConfig()

	var buf bytes.Buffer
	logger, closeLog, err := config.OpenLogger(&buf)
	if err != nil {
		t.Fatalf("OpenLogger returned error: %v", err)
	}
	logger.Info("hello")
	if err := closeLog(); err != nil {
		t.Errorf("Expected no-op close, got %v", err)
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("Expected message on console, got %q", buf.String())
	}
}

func TestOpenLoggerBadPath(t *testing.T) {
	config := DefaultConfig()
	config.LogFile = filepath.Join(t.TempDir(), "missing", "daylight.log")

	if _, _, err := config.OpenLogger(&bytes.Buffer{}); err == nil {
		t.Error("Expected error for unwritable log file")
	}
}
