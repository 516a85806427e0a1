package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/dropdown/internal/errors"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Widget.CloseOnSelect {
		t.Error("Widget.CloseOnSelect should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvPort, "")
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if errors.CodeOf(err) != "E301" {
		t.Errorf("missing config: err = %v, want E301", err)
	}

	writeConfig(t, tmpDir, `{
  "server": {"host": "0.0.0.0", "port": 8080},
  "catalog": {"source": "fruits.json"},
  "widget": {"className": "wide", "closeOnSelect": true},
  "metrics": {"enabled": false},
  "log": {"level": "debug"}
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address = %q", cfg.Address())
	}
	if want := filepath.Join(tmpDir, "fruits.json"); cfg.Catalog.Source != want {
		t.Errorf("Catalog.Source = %q, want %q", cfg.Catalog.Source, want)
	}
	if cfg.Widget.ClassName != "wide" || !cfg.Widget.CloseOnSelect {
		t.Errorf("Widget = %+v", cfg.Widget)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want default", cfg.Metrics.Path)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.Name != DefaultTracerName {
		t.Errorf("Tracing = %+v, want defaults", cfg.Tracing)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel())
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadKeepsRemoteSources(t *testing.T) {
	t.Setenv(EnvPort, "")
	dir := t.TempDir()
	writeConfig(t, dir, `{"catalog": {"source": "s3://bucket/key.json", "region": "us-east-1"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog.Source != "s3://bucket/key.json" {
		t.Errorf("Catalog.Source = %q", cfg.Catalog.Source)
	}
}

func TestLoadResolvesLogFile(t *testing.T) {
	t.Setenv(EnvPort, "")
	dir := t.TempDir()
	writeConfig(t, dir, `{"log": {"file": "logs/dropdown.log"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "logs", "dropdown.log"); cfg.Log.File != want {
		t.Errorf("Log.File = %q, want %q", cfg.Log.File, want)
	}
	if cfg.Log.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Errorf("Log.MaxSizeMB = %d, want %d", cfg.Log.MaxSizeMB, DefaultLogMaxSizeMB)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "not valid json")

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E301") {
		t.Errorf("Expected E301 error, got: %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"server": {"port": 8080}}`)

	t.Setenv(EnvPort, "9090")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}

	t.Setenv(EnvPort, "http")
	if _, err := LoadFile(path); errors.CodeOf(err) != "E302" {
		t.Errorf("bad env port: err = %v, want E302", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(EnvPort, "4000")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Path() != "" {
		t.Errorf("Path = %q, want empty", cfg.Path())
	}
}

func TestSaveTo(t *testing.T) {
	t.Setenv(EnvPort, "")
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.Server.Port = 9000
	cfg.Widget.Title = "Fruit"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path = %q, want %q", cfg.Path(), path)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want %d", loaded.Server.Port, 9000)
	}
	if loaded.Widget.Title != "Fruit" {
		t.Errorf("Widget.Title = %q", loaded.Widget.Title)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Server.Port = -1 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"bad timeout", func(c *Config) { c.Server.ShutdownTimeout = "soon" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"negative log size", func(c *Config) { c.Log.MaxSizeMB = -1 }},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"s3 without region", func(c *Config) { c.Catalog.Source = "s3://b/k" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if errors.CodeOf(err) != "E302" {
				t.Errorf("Validate = %v, want E302", err)
			}
		})
	}
}

func TestShutdownTimeout(t *testing.T) {
	cfg := New()
	if cfg.ShutdownTimeout() != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout())
	}
	cfg.Server.ShutdownTimeout = "250ms"
	if cfg.ShutdownTimeout() != 250*time.Millisecond {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout())
	}
	cfg.Server.ShutdownTimeout = "never"
	if cfg.ShutdownTimeout() != 5*time.Second {
		t.Errorf("ShutdownTimeout fallback = %v", cfg.ShutdownTimeout())
	}
}

func TestURL(t *testing.T) {
	cfg := New()
	if cfg.URL() != "http://localhost:3000" {
		t.Errorf("URL = %q", cfg.URL())
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists should be false for an empty dir")
	}
	writeConfig(t, dir, "{}")
	if !Exists(dir) {
		t.Error("Exists should be true after writing the file")
	}
}
