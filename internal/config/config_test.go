// # internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"orphan/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orphan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `
scan_paths = ["./src"]
include_tests = true

[exclude]
dirs = [".git"]
files = ["*.min.js"]

[entry_points]
patterns = ["run.*"]

[watch]
debounce = "1s"

[output]
json = "report.json"

[history]
path = "orphan.db"
project = "demo"

[limits]
reads_per_second = 200.0
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "./src" {
		t.Errorf("Unexpected ScanPaths: %v", cfg.ScanPaths)
	}
	if !cfg.IncludeTests {
		t.Error("Expected IncludeTests true")
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != ".git" {
		t.Errorf("Unexpected Exclude.Dirs: %v", cfg.Exclude.Dirs)
	}
	if len(cfg.EntryPoints.Patterns) != 1 || cfg.EntryPoints.Patterns[0] != "run.*" {
		t.Errorf("Unexpected EntryPoints.Patterns: %v", cfg.EntryPoints.Patterns)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Output.JSON != "report.json" {
		t.Errorf("Expected JSON output report.json, got %s", cfg.Output.JSON)
	}
	if cfg.History.Project != "demo" {
		t.Errorf("Expected history project demo, got %s", cfg.History.Project)
	}
	if cfg.Limits.ReadBurst == 0 {
		t.Error("Expected read burst default when limiter is enabled")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "." {
		t.Errorf("Expected default scan path '.', got %v", cfg.ScanPaths)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Expected default exclude dirs")
	}
	if len(cfg.EntryPoints.Patterns) == 0 {
		t.Error("Expected default entry point patterns")
	}
	if cfg.History.Project != "default" {
		t.Errorf("Expected default history project, got %s", cfg.History.Project)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
	if !errors.IsCode(err, errors.CodeInput) {
		t.Errorf("Expected INPUT_ERROR, got %v", err)
	}
}

func TestLoad_InvalidGlob(t *testing.T) {
	content := `
[exclude]
dirs = ["[unclosed"]
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("Expected error for invalid glob")
	}
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Errorf("Expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "." {
		t.Errorf("Expected default scan path '.', got %v", cfg.ScanPaths)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}
