package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeServe {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeServe)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("MaxFileSize = %d, want %d", cfg.MaxFileSize, DefaultMaxFileSize)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestValidate(t *testing.T) {
	tempDir := t.TempDir()

	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.UploadDirectory = filepath.Join(tempDir, "uploads")
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid serve config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid extract config without uploads",
			mutate: func(c *Config) { c.Mode = ModeExtract; c.UploadDirectory = "" },
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Mode = "daemon" },
			wantErr: "mode must be",
		},
		{
			name:    "port too small",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "port must be",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port must be",
		},
		{
			name:    "empty upload directory in serve mode",
			mutate:  func(c *Config) { c.UploadDirectory = "" },
			wantErr: "upload directory",
		},
		{
			name:    "missing keywords file",
			mutate:  func(c *Config) { c.KeywordsPath = filepath.Join(tempDir, "nope.json") },
			wantErr: "keywords file",
		},
		{
			name:    "non-positive max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: "file size",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCreatesUploadDirectory(t *testing.T) {
	tempDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.UploadDirectory = filepath.Join(tempDir, "fresh", "uploads")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	info, err := os.Stat(cfg.UploadDirectory)
	if err != nil {
		t.Fatalf("upload directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("upload path is not a directory")
	}
}

func TestAddress(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: 8081}
	if got := cfg.Address(); got != "0.0.0.0:8081" {
		t.Errorf("Address() = %q", got)
	}
}

func TestModeHelpers(t *testing.T) {
	cfg := &Config{Mode: ModeServe, LogLevel: "debug"}

	if !cfg.IsServeMode() || cfg.IsExtractMode() {
		t.Error("serve mode helpers disagree")
	}
	if !cfg.IsDebug() {
		t.Error("IsDebug() = false for debug level")
	}

	cfg.Mode = ModeExtract
	cfg.LogLevel = "info"
	if cfg.IsServeMode() || !cfg.IsExtractMode() {
		t.Error("extract mode helpers disagree")
	}
	if cfg.IsDebug() {
		t.Error("IsDebug() = true for info level")
	}
}

func TestString(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()
	for _, want := range []string{"Mode: serve", "Port: 8080"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
