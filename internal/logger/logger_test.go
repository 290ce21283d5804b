package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("request finished", "path", "/api/status", "status", 200)
	Warn("notice raised", "text", "Session expired. Please log in again.")

	data, err := os.ReadFile(filepath.Join(logDir, "habitdash.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "/api/status") {
		t.Errorf("log file does not contain info entry: %q", string(data))
	}
}

func TestDebugSuppressedOutsideDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Debug("hidden-debug-line")

	data, _ := os.ReadFile(filepath.Join(configDir, "logs", "habitdash.log"))
	if strings.Contains(string(data), "hidden-debug-line") {
		t.Error("debug entry written while debug mode is off")
	}
}

func TestPath(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{Debug: true, TerminalOwned: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	want := filepath.Join(configDir, "logs", "habitdash.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	// debug still reaches the file when the terminal is owned
	Debug("visible-debug-line")
	data, _ := os.ReadFile(want)
	if !strings.Contains(string(data), "visible-debug-line") {
		t.Error("debug entry missing from log file")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
