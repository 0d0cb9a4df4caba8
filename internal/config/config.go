// Package config loads and validates the per-repository configuration
// file, .codescope.yaml, merging it over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the per-repository config file name.
const FileName = ".codescope.yaml"

// Config represents the complete codescope configuration.
type Config struct {
	Version int         `yaml:"version"`
	Paths   PathsConfig `yaml:"paths"`
	Index   IndexConfig `yaml:"index"`
	Log     LogConfig   `yaml:"log"`
}

// PathsConfig configures which paths to exclude from scanning, on top of
// the built-in exclusions.
type PathsConfig struct {
	Exclude []string `yaml:"exclude"`
}

// IndexConfig tunes index runs.
type IndexConfig struct {
	// MaxFileSize is the largest file to index, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// IncludeTests indexes test files too (default: false).
	IncludeTests bool `yaml:"include_tests"`

	// Timeout bounds a single run ("60s", "5m"). Zero means no limit.
	Timeout Duration `yaml:"timeout"`

	// ParserCacheSize bounds the number of live tree-sitter parsers.
	ParserCacheSize int `yaml:"parser_cache_size"`

	// WatchDebounce batches filesystem events in watch mode.
	WatchDebounce Duration `yaml:"watch_debounce"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "5m"
// or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std converts back to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Index: IndexConfig{
			MaxFileSize:     1 * 1024 * 1024,
			Timeout:         Duration(60 * time.Second),
			ParserCacheSize: 10,
			WatchDebounce:   Duration(500 * time.Millisecond),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the repository config if present and merges it over defaults.
// A missing file is not an error.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Index.MaxFileSize < 0 {
		return fmt.Errorf("index.max_file_size must be non-negative")
	}
	if c.Index.Timeout < 0 {
		return fmt.Errorf("index.timeout must be non-negative")
	}
	if c.Index.ParserCacheSize < 0 {
		return fmt.Errorf("index.parser_cache_size must be non-negative")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// StateDir returns the repository's state directory, creating it if
// needed. The database, lock file, and logs live here.
func StateDir(root string) (string, error) {
	dir := filepath.Join(root, ".codescope")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	return dir, nil
}

// DBPath returns the index database path for a repository.
func DBPath(root string) (string, error) {
	dir, err := StateDir(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "index.db"), nil
}
