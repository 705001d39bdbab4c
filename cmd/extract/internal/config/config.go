// Package config loads cmd/extract's optional YAML configuration file.
// Grounded on the teacher's cmd/aleutian main.go config-loading pattern
// (yaml.v3 unmarshal of a fixed path), but missing-file is not fatal
// here: the pipeline has sensible defaults and is usable with zero
// configuration, unlike the teacher's appliance which cannot start
// without its stack settings.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds cmd/extract's process-wide settings.
type Config struct {
	// MaxInputSize bounds how much content the Grammar Registry will
	// hand to tree-sitter for a single candidate. Zero means use the
	// registry's built-in default.
	MaxInputSize int `yaml:"max_input_size"`

	// BatchConcurrency bounds how many documents `extract batch` runs
	// through the pipeline at once. Zero means use a small default.
	BatchConcurrency int `yaml:"batch_concurrency"`

	// TracePath, if set, receives newline-delimited JSON spans for every
	// invocation. Empty disables tracing output.
	TracePath string `yaml:"trace_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BatchConcurrency: 4,
		LogLevel:         "info",
	}
}

// Load reads and parses path. A missing file is not an error: it yields
// Default(), since this pipeline runs with zero configuration. A
// present-but-malformed file is reported as an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
