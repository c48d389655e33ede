package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSetup(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		LogDir:      tmpDir,
		Debug:       true,
		LogToStdout: false,
	}

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	if logger == nil {
		t.Fatal("logger should not be nil")
	}

	logger.Info("test message", "key", "value")

	// Allow for file sync
	time.Sleep(100 * time.Millisecond)

	logPath := filepath.Join(tmpDir, logFileName)
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}

	if info.Size() == 0 {
		t.Error("log file should have content")
	}
}

func TestSetupWithDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging_defaults_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logger, cleanup, err := SetupWithDefaults(tmpDir, false)
	if err != nil {
		t.Fatalf("SetupWithDefaults failed: %v", err)
	}
	defer cleanup()

	if logger == nil {
		t.Fatal("logger should not be nil")
	}
}

func TestSetupWithInvalidDir(t *testing.T) {
	// Try with unwritable directory
	cfg := Config{
		LogDir:      "/nonexistent/path/that/should/not/exist",
		Debug:       false,
		LogToStdout: false,
	}

	// Should fall back to stdout-only logging
	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup should not error: %v", err)
	}
	defer cleanup()

	if logger == nil {
		t.Fatal("logger should not be nil even with invalid dir")
	}
}

func TestSetupDebugLevel(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging_debug_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logger, cleanup, err := Setup(Config{LogDir: tmpDir, Debug: true})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Debug("debug message", "detail", "visible")

	time.Sleep(100 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "debug message") {
		t.Error("debug messages should be logged when Debug is enabled")
	}
}

func TestSetupInfoLevelFiltersDebug(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging_info_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logger, cleanup, err := Setup(Config{LogDir: tmpDir, Debug: false})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Debug("hidden message")
	logger.Info("visible message")

	time.Sleep(100 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(content), "hidden message") {
		t.Error("debug messages should be filtered at info level")
	}
	if !strings.Contains(string(content), "visible message") {
		t.Error("info messages should be logged")
	}
}

func TestMultipleWrites(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging_multi_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logger, cleanup, err := Setup(Config{LogDir: tmpDir})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	for i := 0; i < 10; i++ {
		logger.Info("test message", "index", i)
	}

	time.Sleep(100 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) < 10 {
		t.Errorf("expected at least 10 log lines, got %d", len(lines))
	}
}

func TestSetupWithStdout(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logging_stdout_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		LogDir:      tmpDir,
		Debug:       true,
		LogToStdout: true,
	}

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	// Should still write to file
	logger.Info("test with stdout")

	time.Sleep(100 * time.Millisecond)

	info, err := os.Stat(filepath.Join(tmpDir, logFileName))
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}

	if info.Size() == 0 {
		t.Error("log file should have content even with stdout enabled")
	}
}
