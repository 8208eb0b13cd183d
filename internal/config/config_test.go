package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.SetDefaults()

	if cfg.Server.HTTPAddr != "127.0.0.1:8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "127.0.0.1:8080")
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.Server.LogLevel)
	}
	if cfg.API.HTTPTimeout != "30s" {
		t.Errorf("HTTPTimeout = %q, want 30s", cfg.API.HTTPTimeout)
	}
	if cfg.Response.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Response.Format)
	}
	if cfg.Response.MaxSize != 50000 {
		t.Errorf("MaxSize = %d, want 50000", cfg.Response.MaxSize)
	}
	if cfg.Paging.DefaultPer != 25 {
		t.Errorf("DefaultPer = %d, want 25", cfg.Paging.DefaultPer)
	}
	if cfg.Paging.MaxPer != 100 {
		t.Errorf("MaxPer = %d, want 100", cfg.Paging.MaxPer)
	}
}

func TestConfig_SetDefaults_PreservesExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Server:   ServerConfig{HTTPAddr: "0.0.0.0:9090", LogLevel: "debug"},
		Response: ResponseConfig{Format: "markdown", MaxSize: 1000},
		Paging:   PagingConfig{DefaultPer: 10, MaxPer: 50},
	}
	cfg.SetDefaults()

	if cfg.Server.HTTPAddr != "0.0.0.0:9090" {
		t.Errorf("HTTPAddr = %q, want 0.0.0.0:9090", cfg.Server.HTTPAddr)
	}
	if cfg.Response.Format != "markdown" {
		t.Errorf("Format = %q, want markdown", cfg.Response.Format)
	}
	if cfg.Paging.DefaultPer != 10 || cfg.Paging.MaxPer != 50 {
		t.Errorf("paging = %+v, want 10/50", cfg.Paging)
	}
}

func TestConfig_HTTPTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"parses valid duration", "1m", time.Minute},
		{"falls back on garbage", "not-a-duration", 30 * time.Second},
		{"falls back on empty", "", 30 * time.Second},
		{"falls back on negative", "-5s", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Config{API: APIConfig{HTTPTimeout: tt.value}}
			if got := cfg.HTTPTimeout(); got != tt.want {
				t.Errorf("HTTPTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindConfigFileInPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "payroll-mcp.yaml")
	if err := os.WriteFile(path, []byte("server:\n  log_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := findConfigFileInPaths([]string{dir}); got != path {
		t.Errorf("findConfigFileInPaths = %q, want %q", got, path)
	}
	if got := findConfigFileInPaths([]string{t.TempDir()}); got != "" {
		t.Errorf("expected empty result for dir without config, got %q", got)
	}
}
