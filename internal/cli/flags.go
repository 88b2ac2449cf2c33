// Package cli provides flag binding and validation for the specretry CLI.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/CodexForgeBR/spec-retry/internal/config"
	"github.com/CodexForgeBR/spec-retry/internal/retry"
	"github.com/CodexForgeBR/spec-retry/internal/runnerconf"
)

// BindFlags registers the specretry flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check flag combinations.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Retry
	flags.IntVar(&cfg.MaxAttempts, "max-attempts", config.DefaultMaxAttempts, "Re-invocations allowed after the first run (<= 0 disables retries)")
	flags.StringVar(&cfg.ResultDir, "result-dir", cfg.ResultDir, "Directory holding per-attempt failure records")

	// Runner
	flags.StringVar(&cfg.RunnerConfig, "runner-config", "specretry.yaml", "Path to the runner YAML config")
	flags.StringVar(&cfg.Specs, retry.FlagSpecs, "", "Comma-separated spec files or patterns to run")
	flags.StringVar(&cfg.Suite, retry.FlagSuite, "", "Comma-separated suite names from the runner config")

	// Set by specretry itself when it re-invokes.
	flags.IntVar(&cfg.Retry, retry.FlagRetry, 0, "Current attempt number")
	flags.BoolVar(&cfg.DisableChecks, retry.FlagDisableChecks, false, "Skip runner config checks")

	// Config & output
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or structured")
}

// ValidateFlags checks for invalid flag combinations after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.LogFormat != "text" && cfg.LogFormat != "structured" {
		return fmt.Errorf("--log-format must be 'text' or 'structured', got: %s", cfg.LogFormat)
	}

	if cfg.Retry < 0 {
		return fmt.Errorf("--retry must be >= 0, got: %d", cfg.Retry)
	}

	// --config must exist if provided
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	if cfg.DisableChecks {
		return nil
	}

	if cfg.Specs != "" && cfg.Suite != "" {
		return fmt.Errorf("--specs and --suite are mutually exclusive")
	}

	for _, p := range runnerconf.SplitList(cfg.Specs) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("--specs: invalid pattern %q", p)
		}
	}

	if cmd.Flags().Changed(retry.FlagRetry) && cfg.Specs == "" {
		return fmt.Errorf("--retry requires --specs")
	}

	return nil
}

// CaptureInvocation records how this process was started so the next attempt
// can be launched the same way. Only flags set explicitly on the command line
// are carried over; args are the positional runner arguments.
func CaptureInvocation(cmd *cobra.Command, args []string) retry.Invocation {
	inv := retry.Invocation{
		Command: os.Args[0],
		Flags:   make(map[string]string),
		Args:    append([]string(nil), args...),
	}

	cmd.Flags().Visit(func(f *pflag.Flag) {
		inv.Flags[f.Name] = flagValue(f)
	})
	return inv
}

// flagValue renders f in a form its own Set accepts.
func flagValue(f *pflag.Flag) string {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return strings.Join(sv.GetSlice(), ",")
	}
	return f.Value.String()
}
