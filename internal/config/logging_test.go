package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    LoggingConfig
		override  string
		wantError bool
	}{
		{name: "defaults", config: LoggingConfig{}},
		{name: "console debug", config: LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", config: LoggingConfig{Level: "loud"}, override: "warn"},
		{name: "warning alias", config: LoggingConfig{Level: "warning"}},
		{name: "bad level", config: LoggingConfig{Level: "loud"}, wantError: true},
		{name: "bad format", config: LoggingConfig{Format: "xml"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := tt.config.NewLogger(tt.override)
			if tt.wantError {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger() returned nil")
			}
		})
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fincalc.log")
	logger, err := LoggingConfig{Level: "info", OutputFile: path}.NewLogger("")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("written to file")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file does not contain the message: %s", data)
	}
}
