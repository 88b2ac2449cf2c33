// Package runnerconf loads the test runner configuration and resolves the
// set of spec files an attempt runs.
package runnerconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Config describes how to start the test runner and which specs it runs.
type Config struct {
	// Command is the runner program and its fixed arguments.
	Command []string `yaml:"command" validate:"required,min=1,dive,required"`
	// UnitFlag, when set, passes the spec list as "<flag>=a,b" instead of
	// trailing arguments.
	UnitFlag string `yaml:"unit_flag"`
	// Specs are glob patterns (doublestar syntax) relative to the config file.
	Specs []string `yaml:"specs" validate:"dive,required"`
	// Exclude patterns are removed from every resolved spec list.
	Exclude []string `yaml:"exclude" validate:"dive,required"`
	// Suites name alternative pattern lists selectable with --suite.
	Suites map[string][]string `yaml:"suites" validate:"dive,min=1,dive,required"`

	// dir is the absolute directory of the config file.
	dir string
}

var validate = validator.New()

// Load reads and validates the runner config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read runner config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("runner config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve runner config path: %w", err)
	}
	cfg.dir = filepath.Dir(abs)
	return cfg, nil
}

// Parse decodes and validates YAML. Relative patterns resolve against the
// working directory until Load or SetDir sets the config directory.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if len(cfg.Specs) == 0 && len(cfg.Suites) == 0 {
		return nil, errors.New("validate: at least one of specs or suites is required")
	}
	return &cfg, nil
}

// Dir returns the directory relative patterns resolve against.
func (c *Config) Dir() string {
	if c.dir != "" {
		return c.dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// SetDir overrides the directory relative patterns resolve against.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}
