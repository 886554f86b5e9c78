package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetConfigPath(t *testing.T) {
	original := os.Getenv("PADBRIDGE_CONFIG")
	defer os.Setenv("PADBRIDGE_CONFIG", original)

	os.Unsetenv("PADBRIDGE_CONFIG")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	os.Setenv("PADBRIDGE_CONFIG", "/custom/path.yaml")
	if got := getConfigPath(); got != "/custom/path.yaml" {
		t.Errorf("getConfigPath() = %q, want %q", got, "/custom/path.yaml")
	}
}

func TestRunMissingConfig(t *testing.T) {
	original := os.Getenv("PADBRIDGE_CONFIG")
	defer os.Setenv("PADBRIDGE_CONFIG", original)

	os.Setenv("PADBRIDGE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Error("run() with missing config should return error")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	original := os.Getenv("PADBRIDGE_CONFIG")
	defer os.Setenv("PADBRIDGE_CONFIG", original)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	// Empty database path fails validation.
	content := `
database:
  path: ""
mqtt:
  enabled: false
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	os.Setenv("PADBRIDGE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Error("run() with invalid config should return error")
	}
}

func TestRunStartupAndShutdown(t *testing.T) {
	original := os.Getenv("PADBRIDGE_CONFIG")
	defer os.Setenv("PADBRIDGE_CONFIG", original)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: "` + filepath.Join(dir, "padbridge.db") + `"
mqtt:
  enabled: false
influxdb:
  enabled: false
logging:
  level: "error"
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	os.Setenv("PADBRIDGE_CONFIG", configPath)

	// Cancel shortly after startup; run should shut down cleanly and
	// persist an empty registry snapshot.
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Errorf("run() = %v, want clean shutdown", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "padbridge.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
