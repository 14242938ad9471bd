package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jellyterm/internal/config"
)

func TestSetupLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}

	logger.Debug("hello", "key", "value")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file missing structured record: %s", data)
	}
}

func TestSetupLoggerLevelGates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "error"})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}

	logger.Info("quiet")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("info record written despite error level: %s", data)
	}
}

func TestSetupLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "chatty"})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}

	logger.Info("kept")
	logger.Debug("dropped")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"kept"`) {
		t.Errorf("info record missing at default level: %s", data)
	}
	if strings.Contains(string(data), "dropped") {
		t.Errorf("debug record written at default level: %s", data)
	}
}
