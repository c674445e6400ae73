// Package config loads the optional simplc.yaml file that controls
// codegen and diagnostic knobs. A missing file is not an error; the
// defaults stand on their own.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every user-tunable knob. Default() returns the default
// configuration: 64-bit words, a fatal verifier, colorized diagnostics.
// The zero value is not that default: its WordSize is 0 and both flags
// are false.
type Config struct {
	// WordSize is the target integer width in bits: 32 or 64.
	WordSize int `yaml:"word_size"`
	// VerifierFatal controls whether an IR verification failure aborts
	// the pipeline (true) or is only reported to the caller (false).
	VerifierFatal bool `yaml:"verifier_fatal"`
	// Color controls whether diagnostics (type errors, occurs-check
	// failures) are colorized.
	Color bool `yaml:"color"`
}

// Default returns the configuration used when no simplc.yaml is present.
func Default() Config {
	return Config{WordSize: 64, VerifierFatal: true, Color: true}
}

// Load reads and parses the YAML file at path, filling in any field the
// file omits from Default(). A missing file is not an error: Load
// returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.WordSize != 32 && cfg.WordSize != 64 {
		return Config{}, fmt.Errorf("config: word_size must be 32 or 64, got %d", cfg.WordSize)
	}
	return cfg, nil
}
