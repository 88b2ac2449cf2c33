// Package config defines the specretry configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < CLI flag overrides.
package config

import (
	"os"
	"path/filepath"
)

// DefaultMaxAttempts is the number of re-invocations allowed after the first run.
const DefaultMaxAttempts = 2

// DefaultResultDirName is the directory created under the working directory
// to hold per-attempt failure records.
const DefaultResultDirName = "protractorFailedSpecs"

// ProjectConfigFile is looked up in the working directory.
const ProjectConfigFile = ".specretry"

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [5]string{
	"MAX_ATTEMPTS",
	"RESULT_DIR",
	"RUNNER_CONFIG",
	"VERBOSE",
	"LOG_FORMAT",
}

// Config holds every configuration field for the specretry CLI.
type Config struct {
	// Retry settings.
	MaxAttempts int
	ResultDir   string

	// Runner configuration file (YAML).
	RunnerConfig string

	// Output.
	Verbose   bool
	LogFormat string

	// CLI-only flags (not loaded from config files).
	ConfigFile    string
	Specs         string
	Suite         string
	Retry         int
	DisableChecks bool
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		MaxAttempts:  DefaultMaxAttempts,
		ResultDir:    DefaultResultDir(),
		RunnerConfig: "specretry.yaml",
		LogFormat:    "text",
	}
}

// DefaultResultDir returns <cwd>/protractorFailedSpecs. If the working
// directory cannot be determined the relative name is returned.
func DefaultResultDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultResultDirName
	}
	return filepath.Join(wd, DefaultResultDirName)
}

// GlobalConfigPath returns the per-user config file location, or "" when no
// user config directory is available.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "specretry", "config")
}
