// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"

	"orphan/internal/errors"
)

type Config struct {
	ScanPaths    []string    `toml:"scan_paths"`
	IncludeTests bool        `toml:"include_tests"`
	Exclude      Exclude     `toml:"exclude"`
	EntryPoints  EntryPoints `toml:"entry_points"`
	Watch        Watch       `toml:"watch"`
	Output       Output      `toml:"output"`
	History      History     `toml:"history"`
	Serve        Serve       `toml:"serve"`
	Limits       Limits      `toml:"limits"`
	Tracing      Tracing     `toml:"tracing"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type EntryPoints struct {
	Patterns []string `toml:"patterns"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	Text string `toml:"text"`
	JSON string `toml:"json"`
}

type History struct {
	Path    string `toml:"path"`
	Project string `toml:"project"`
}

type Serve struct {
	Addr string `toml:"addr"`
}

type Limits struct {
	ReadsPerSecond float64 `toml:"reads_per_second"` // 0 disables the limiter
	ReadBurst      int     `toml:"read_burst"`
}

type Tracing struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

// DefaultExcludeDirs mirrors the dependency/build directories nobody wants in
// an import graph.
var DefaultExcludeDirs = []string{
	"node_modules", "vendor", "venv", ".venv", "__pycache__", ".git",
	"dist", "build", ".next", "target", "bin", "obj", ".idea", ".vscode",
	"coverage",
}

// DefaultEntryPointPatterns whitelists filenames conventionally invoked
// directly rather than imported.
var DefaultEntryPointPatterns = []string{
	"index.*", "main.*", "server.*", "app.*", "cli.*",
	"setup.py", "manage.py", "conftest.py",
	"vite.config.*", "webpack.config.*", "jest.config.*",
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInput, "read config file")
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInput, "decode config file")
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.ScanPaths) == 0 {
		cfg.ScanPaths = []string{"."}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = append([]string(nil), DefaultExcludeDirs...)
	}
	if len(cfg.EntryPoints.Patterns) == 0 {
		cfg.EntryPoints.Patterns = append([]string(nil), DefaultEntryPointPatterns...)
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.History.Project == "" {
		cfg.History.Project = "default"
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8321"
	}
	if cfg.Limits.ReadsPerSecond > 0 && cfg.Limits.ReadBurst == 0 {
		cfg.Limits.ReadBurst = 64
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = "localhost:4317"
	}
}

// Validate compiles every glob once so a bad pattern fails the run up front
// instead of midway through a scan.
func (c *Config) Validate() error {
	groups := []struct {
		name     string
		patterns []string
	}{
		{"exclude.dirs", c.Exclude.Dirs},
		{"exclude.files", c.Exclude.Files},
		{"entry_points.patterns", c.EntryPoints.Patterns},
	}
	for _, group := range groups {
		for _, p := range group.patterns {
			if _, err := glob.Compile(p); err != nil {
				return errors.AddContext(
					errors.Wrap(err, errors.CodeValidation, "invalid glob in "+group.name),
					errors.CtxPattern, p)
			}
		}
	}
	return nil
}
