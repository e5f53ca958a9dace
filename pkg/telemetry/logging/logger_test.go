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
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("secret stored", "component", "store", "secret_id", "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\noutput: %s", err, buf.String())
	}
	if entry["msg"] != "secret stored" {
		t.Errorf("msg = %v, want %q", entry["msg"], "secret stored")
	}
	if entry["component"] != "store" {
		t.Errorf("component = %v, want %q", entry["component"], "store")
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("category deleted")

	if !strings.Contains(buf.String(), "msg=\"category deleted\"") {
		t.Errorf("text output missing message: %s", buf.String())
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Debug("should be dropped")
	logger.Info("should be dropped too")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn level, got: %s", buf.String())
	}

	logger.Warn("should appear")
	if buf.Len() == 0 {
		t.Error("expected warn output")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "verbose"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_InvalidFormat(t *testing.T) {
	if _, err := New(Config{Format: "logfmt"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNew_Defaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Writer: &buf})
	if err != nil {
		t.Fatalf("New with empty config failed: %v", err)
	}

	logger.Debug("dropped at default info level")
	if buf.Len() != 0 {
		t.Errorf("default level should be info, got output: %s", buf.String())
	}

	logger.Info("kept")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Errorf("default format should be JSON: %v", err)
	}
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger, err := Setup(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if slog.Default() != logger {
		t.Error("Setup did not install the logger as default")
	}

	slog.Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("default logger did not write to configured writer: %s", buf.String())
	}
}
