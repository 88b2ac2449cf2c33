package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// whitelistSet is a precomputed lookup table for fast whitelist membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// The file uses dotenv syntax: comments, blank lines, quoting and an optional
// "export" prefix are handled by godotenv. Keys not present in
// WhitelistedVars are silently ignored.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	parsed, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	result := make(map[string]string, len(parsed))
	for key, value := range parsed {
		key = strings.TrimSpace(key)
		if !whitelistSet[key] {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	return result, nil
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath)
//  5. CLI overrides (cliOverrides map)
//
// Any path that is empty is silently skipped. Missing global and project
// files are not an error; a missing explicit file is.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	if globalPath != "" {
		if err := applyOptionalFile(cfg, globalPath); err != nil {
			return nil, fmt.Errorf("global config: %w", err)
		}
	}

	if projectPath != "" {
		if err := applyOptionalFile(cfg, projectPath); err != nil {
			return nil, fmt.Errorf("project config: %w", err)
		}
	}

	if explicitPath != "" {
		m, err := LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("explicit config: %w", err)
		}
		ApplyMapToConfig(cfg, m)
	}

	if len(cliOverrides) > 0 {
		ApplyMapToConfig(cfg, cliOverrides)
	}

	return cfg, nil
}

func applyOptionalFile(cfg *Config, path string) error {
	m, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	ApplyMapToConfig(cfg, m)
	return nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Unknown keys are silently ignored. Integer fields that fail to parse
// are silently ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "MAX_ATTEMPTS":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.MaxAttempts = v
			}
		case "RESULT_DIR":
			if value != "" {
				cfg.ResultDir = value
			}
		case "RUNNER_CONFIG":
			if value != "" {
				cfg.RunnerConfig = value
			}
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		case "LOG_FORMAT":
			cfg.LogFormat = strings.ToLower(value)
		}
	}
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
