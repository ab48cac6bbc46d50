// Package config loads the optional slpy.yaml project configuration. Every
// default reproduces the canonical emission grammar; the file only exists
// to rename the runtime module, the generated class, or the indent width,
// and to point the compile cache somewhere.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "slpy.yaml"

// Config is the top-level slpy.yaml document.
type Config struct {
	// RuntimeModule is the Python module the generated program imports for
	// its runtime support library. Defaults to "slrt".
	RuntimeModule string `yaml:"runtime_module,omitempty"`

	// ClassName is the name of the generated class. Defaults to "Script".
	ClassName string `yaml:"class_name,omitempty"`

	// IndentWidth is spaces per indentation level, 1 to 8. Defaults to 4.
	IndentWidth int `yaml:"indent_width,omitempty"`

	// CachePath enables the compile cache when set: generated output is
	// stored in a sqlite database at this path, keyed by source content
	// and configuration.
	CachePath string `yaml:"cache_path,omitempty"`
}

// Default returns the canonical configuration.
func Default() Config {
	return Config{
		RuntimeModule: "slrt",
		ClassName:     "Script",
		IndentWidth:   4,
	}
}

// Load reads a config file and fills in defaults. A missing file is not an
// error: the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.RuntimeModule == "" {
		cfg.RuntimeModule = "slrt"
	}
	if cfg.ClassName == "" {
		cfg.ClassName = "Script"
	}
	if cfg.IndentWidth == 0 {
		cfg.IndentWidth = 4
	}
	if cfg.IndentWidth < 1 || cfg.IndentWidth > 8 {
		return Default(), fmt.Errorf("%s: indent_width %d out of range 1..8", path, cfg.IndentWidth)
	}
	return cfg, nil
}

// Fingerprint summarizes the options that affect emitted output, for use
// as part of the compile-cache key.
func (c Config) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%d", c.RuntimeModule, c.ClassName, c.IndentWidth)
}
