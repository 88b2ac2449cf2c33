package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/spec-retry/internal/cli"
	"github.com/CodexForgeBR/spec-retry/internal/config"
	"github.com/CodexForgeBR/spec-retry/internal/exitcode"
)

func parse(t *testing.T, args ...string) (*cobra.Command, *config.Config) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{Use: "specretry"}
	cli.BindFlags(cmd, cfg)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, cfg
}

func TestBuildCLIOverrides_OnlyChangedFlags(t *testing.T) {
	cmd, cfg := parse(t, "--max-attempts=0", "--log-format", "structured", "--specs=a.js")

	assert.Equal(t, map[string]string{
		"MAX_ATTEMPTS": "0",
		"LOG_FORMAT":   "structured",
	}, buildCLIOverrides(cmd, cfg))
}

func TestBuildCLIOverrides_None(t *testing.T) {
	cmd, cfg := parse(t)
	assert.Empty(t, buildCLIOverrides(cmd, cfg))
}

func TestResolveConfig_FlagsWinOverExplicitFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "retry.env")
	require.NoError(t, os.WriteFile(path, []byte("MAX_ATTEMPTS=5\nRUNNER_CONFIG=ci.yaml\n"), 0644))

	cmd, cfg := parse(t, "--config", path, "--max-attempts=1", "--retry=2", "--specs=a.js", "--disable-checks")
	final, err := resolveConfig(cmd, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, final.MaxAttempts)
	assert.Equal(t, "ci.yaml", final.RunnerConfig)
	assert.Equal(t, 2, final.Retry)
	assert.Equal(t, "a.js", final.Specs)
	assert.True(t, final.DisableChecks)
	assert.Equal(t, path, final.ConfigFile)
}

func TestExecute_InvalidFlags(t *testing.T) {
	assert.Equal(t, exitcode.Error, execute([]string{"--log-format", "xml"}))
	assert.Equal(t, exitcode.Error, execute([]string{"--no-such-flag"}))
}
