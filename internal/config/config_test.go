package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig tests that NewConfig returns sensible defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.ListenAddress != ":8080" {
		t.Errorf("expected listen :8080, got %q", cfg.ListenAddress)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.BaseURL != "https://t.me" {
		t.Errorf("expected base URL https://t.me, got %q", cfg.BaseURL)
	}
	if !strings.Contains(cfg.UserAgent, "Chrome/91") {
		t.Errorf("expected Chrome user agent, got %q", cfg.UserAgent)
	}
	if cfg.MaxBodySize != 5*1024*1024 {
		t.Errorf("expected 5MB body limit, got %d", cfg.MaxBodySize)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected shutdown timeout 10s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.SOCKS5Proxy != "" || cfg.UseEmbeddedTor {
		t.Error("expected direct connections by default")
	}
	if cfg.TorStartupTimeout != 3*time.Minute {
		t.Errorf("expected tor startup timeout 3m, got %v", cfg.TorStartupTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{name: "valid config", modify: func(_ *Config) {}},
		{name: "empty listen address", modify: func(c *Config) { c.ListenAddress = " " }, wantErr: ErrEmptyListenAddress},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "negative shutdown timeout", modify: func(c *Config) { c.ShutdownTimeout = -1 }, wantErr: ErrInvalidShutdownTimeout},
		{name: "zero shutdown timeout", modify: func(c *Config) { c.ShutdownTimeout = 0 }},
		{name: "negative body size", modify: func(c *Config) { c.MaxBodySize = -1 }, wantErr: ErrInvalidMaxBodySize},
		{name: "zero body size", modify: func(c *Config) { c.MaxBodySize = 0 }},
		{name: "relative base URL", modify: func(c *Config) { c.BaseURL = "t.me" }, wantErr: ErrInvalidBaseURL},
		{name: "ftp base URL", modify: func(c *Config) { c.BaseURL = "ftp://t.me" }, wantErr: ErrInvalidBaseURL},
		{name: "unparseable base URL", modify: func(c *Config) { c.BaseURL = "http://[::1" }, wantErr: ErrInvalidBaseURL},
		{name: "http base URL", modify: func(c *Config) { c.BaseURL = "http://127.0.0.1:8081" }},
		{
			name: "socks5 and embedded tor",
			modify: func(c *Config) {
				c.SOCKS5Proxy = "127.0.0.1:1080"
				c.UseEmbeddedTor = true
			},
			wantErr: ErrConflictingProxySettings,
		},
		{name: "socks5 only", modify: func(c *Config) { c.SOCKS5Proxy = "127.0.0.1:1080" }},
		{name: "markdown output", modify: func(c *Config) { c.OutputFormat = "markdown" }},
		{name: "uppercase text output", modify: func(c *Config) { c.OutputFormat = "TEXT" }},
		{name: "unknown output", modify: func(c *Config) { c.OutputFormat = "xml" }, wantErr: ErrInvalidOutputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestFileApply tests layering of config file values over defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if *cfg != *NewConfig() {
			t.Errorf("expected defaults to be unchanged, got %+v", cfg)
		}
	})

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()

		var f *File
		cfg := NewConfig()
		f.Apply(cfg)

		if cfg.ListenAddress != DefaultListenAddress {
			t.Error("expected defaults to be unchanged")
		}
	})

	t.Run("set values override defaults", func(t *testing.T) {
		t.Parallel()

		f := &File{
			Server: ServerSection{Listen: "127.0.0.1:9000", ShutdownTimeout: time.Second},
			Fetch: FetchSection{
				BaseURL:     "http://mirror.local",
				UserAgent:   "agent",
				Timeout:     5 * time.Second,
				MaxBodySize: 1024,
			},
			Proxy: ProxySection{SOCKS5: "127.0.0.1:1080", User: "u", Password: "p"},
			Tor:   TorSection{StartupTimeout: time.Minute},
			Log:   LogSection{Verbose: true, JSON: true},
		}
		cfg := NewConfig()
		f.Apply(cfg)

		want := &Config{
			ListenAddress:     "127.0.0.1:9000",
			ShutdownTimeout:   time.Second,
			Timeout:           5 * time.Second,
			BaseURL:           "http://mirror.local",
			UserAgent:         "agent",
			MaxBodySize:       1024,
			SOCKS5Proxy:       "127.0.0.1:1080",
			SOCKS5User:        "u",
			SOCKS5Password:    "p",
			TorStartupTimeout: time.Minute,
			Verbose:           true,
			JSONLogs:          true,
			OutputFormat:      DefaultOutputFormat,
		}
		if *cfg != *want {
			t.Errorf("got %+v, want %+v", cfg, want)
		}
	})

	t.Run("embedded tor is enabled from file", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{Tor: TorSection{Embedded: true}}).Apply(cfg)

		if !cfg.UseEmbeddedTor {
			t.Error("expected embedded tor to be enabled")
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.proxycollector")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `server:
  listen: "127.0.0.1:9000"
  shutdownTimeout: 5s
fetch:
  timeout: 15s
  maxBodySize: 1048576
proxy:
  socks5: "127.0.0.1:1080"
tor:
  startupTimeout: 2m
log:
  verbose: true
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Server.Listen != "127.0.0.1:9000" {
			t.Errorf("unexpected listen %q", cf.Server.Listen)
		}
		if cf.Server.ShutdownTimeout != 5*time.Second {
			t.Errorf("unexpected shutdown timeout %v", cf.Server.ShutdownTimeout)
		}
		if cf.Fetch.Timeout != 15*time.Second {
			t.Errorf("unexpected timeout %v", cf.Fetch.Timeout)
		}
		if cf.Fetch.MaxBodySize != 1048576 {
			t.Errorf("unexpected max body size %d", cf.Fetch.MaxBodySize)
		}
		if cf.Proxy.SOCKS5 != "127.0.0.1:1080" {
			t.Errorf("unexpected socks5 %q", cf.Proxy.SOCKS5)
		}
		if cf.Tor.StartupTimeout != 2*time.Minute {
			t.Errorf("unexpected tor startup timeout %v", cf.Tor.StartupTimeout)
		}
		if !cf.Log.Verbose {
			t.Error("expected verbose logging")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for invalid duration", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("fetch:\n  timeout: soon\n"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid duration")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("server: {}"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGConfigDir tests the XDG config directory.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if dir == "" {
		t.Fatal("expected non-empty path")
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("expected path to end with %q, got %q", AppName, dir)
	}
}
