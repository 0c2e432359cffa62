package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")

		logger, err := NewLogger(dir, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); os.IsNotExist(err) {
			t.Errorf("log file was not created in %s", dir)
		}
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if logger.file != nil {
			t.Error("expected file to be nil when dir is empty")
		}
	})
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{LevelDebug, []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelWarn, []string{"WARN", "ERROR"}},
		{"nonsense", []string{"INFO", "WARN", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			dir := t.TempDir()
			logger, err := NewLogger(dir, tt.level)
			if err != nil {
				t.Fatalf("NewLogger failed: %v", err)
			}
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")
			if err := logger.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			entries := readEntries(t, dir)
			if len(entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.want))
			}
			for i, e := range entries {
				if e["level"] != tt.want[i] {
					t.Errorf("entry %d level = %v, want %s", i, e["level"], tt.want[i])
				}
			}
		})
	}
}

func TestContextPropagation(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	runLogger := logger.WithRun("run-1", "error")
	runLogger.WithStep(7, "archive").Info("step failed", "progress", 60)
	runLogger.With("outcome", "failed", 42, "ignored-key").Info("run finished")
	logger.Info("untagged")
	_ = logger.Close()

	entries := readEntries(t, dir)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	first := entries[0]
	if first["run_id"] != "run-1" || first["run_kind"] != "error" {
		t.Errorf("missing run context: %v", first)
	}
	if first["step"] != float64(7) || first["step_id"] != "archive" {
		t.Errorf("missing step context: %v", first)
	}
	if first["progress"] != float64(60) {
		t.Errorf("missing call args: %v", first)
	}

	if entries[1]["outcome"] != "failed" {
		t.Errorf("With() attrs missing: %v", entries[1])
	}
	if _, ok := entries[1]["step"]; ok {
		t.Error("sibling logger must not inherit step context")
	}
	if _, ok := entries[2]["run_id"]; ok {
		t.Error("parent logger must not inherit child context")
	}
}

func TestNewLoggerWithMirror(t *testing.T) {
	dir := t.TempDir()
	var mirror bytes.Buffer

	logger, err := NewLoggerWithMirror(dir, LevelInfo, &mirror)
	if err != nil {
		t.Fatalf("NewLoggerWithMirror failed: %v", err)
	}
	logger.WithRun("run-2", "normal").Info("run started")
	_ = logger.Close()

	if len(readEntries(t, dir)) != 1 {
		t.Error("expected one JSON entry in the file")
	}
	text := mirror.String()
	if !strings.Contains(text, "msg=\"run started\"") || !strings.Contains(text, "run_id=run-2") {
		t.Errorf("mirror output = %q", text)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.WithStep(1, "start").Error("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on NopLogger returned %v", err)
	}
}

func TestNewLoggerFromHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerFromHandler(slog.NewJSONHandler(&buf, nil))
	logger.WithRun("run-3", "error").Info("run started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if entry["run_id"] != "run-3" || entry["run_kind"] != "error" {
		t.Errorf("entry = %v, want run attributes", entry)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close returned %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug": LevelDebug,
		"Warn":  LevelWarn,
		"ERROR": LevelError,
		"info":  LevelInfo,
		"":      LevelInfo,
		"loud":  LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
	if len(ValidLevels()) != 4 {
		t.Errorf("ValidLevels() = %v", ValidLevels())
	}
}
