package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/spec-retry/internal/cli"
	"github.com/CodexForgeBR/spec-retry/internal/config"
	"github.com/CodexForgeBR/spec-retry/internal/exitcode"
	"github.com/CodexForgeBR/spec-retry/internal/phases"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the root command with args and returns the process exit code.
func execute(args []string) int {
	cfg := config.NewDefaultConfig()
	code := exitcode.Success

	rootCmd := &cobra.Command{
		Use:     "specretry [flags] [-- runner args...]",
		Short:   "Re-run only the failed spec files of a test run",
		Long:    "specretry runs a test runner, records which spec files failed and re-invokes itself on just those files.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFlags(cmd, cfg); err != nil {
				return err
			}
			finalCfg, err := resolveConfig(cmd, cfg)
			if err != nil {
				return err
			}
			code = phases.NewOrchestrator(finalCfg, cli.CaptureInvocation(cmd, args)).Run(context.Background())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(rootCmd, cfg)
	cli.SetCustomHelp(rootCmd)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitcode.Error
	}
	return code
}

// resolveConfig loads the config files with their precedence and merges the
// CLI-only flags back in.
func resolveConfig(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	finalCfg, err := config.LoadWithPrecedence(
		config.GlobalConfigPath(),
		config.ProjectConfigFile,
		cfg.ConfigFile,
		buildCLIOverrides(cmd, cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	finalCfg.ConfigFile = cfg.ConfigFile
	finalCfg.Specs = cfg.Specs
	finalCfg.Suite = cfg.Suite
	finalCfg.Retry = cfg.Retry
	finalCfg.DisableChecks = cfg.DisableChecks
	return finalCfg, nil
}

// buildCLIOverrides creates a map of CLI flag overrides from the config.
// Uses cmd.Flags().Changed() to only include flags explicitly set by the user,
// ensuring config file values are not accidentally overridden by default values.
func buildCLIOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"result-dir":    {"RESULT_DIR", cfg.ResultDir},
		"runner-config": {"RUNNER_CONFIG", cfg.RunnerConfig},
		"log-format":    {"LOG_FORMAT", cfg.LogFormat},
	}
	for flag, mapping := range stringFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	if cmd.Flags().Changed("max-attempts") {
		overrides["MAX_ATTEMPTS"] = strconv.Itoa(cfg.MaxAttempts)
	}
	if cmd.Flags().Changed("verbose") {
		overrides["VERBOSE"] = strconv.FormatBool(cfg.Verbose)
	}

	return overrides
}
