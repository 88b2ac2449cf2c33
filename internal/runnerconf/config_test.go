package runnerconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile writes content at path, creating intermediate directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// realPath resolves symlinks so that tests work on macOS where /var is a
// symlink to /private/var.
func realPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

// chdirTemp changes the working directory to dir for the duration of the test.
func chdirTemp(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(`
command: [node, run-specs.js]
unit_flag: --files
specs:
  - specs/**/*.spec.js
exclude:
  - specs/wip/*.js
suites:
  smoke: [specs/smoke/*.js]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"node", "run-specs.js"}, cfg.Command)
	assert.Equal(t, "--files", cfg.UnitFlag)
	assert.Equal(t, []string{"specs/**/*.spec.js"}, cfg.Specs)
	assert.Equal(t, []string{"specs/wip/*.js"}, cfg.Exclude)
	assert.Equal(t, []string{"smoke"}, cfg.SuiteNames())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing command", "specs: [a.js]\n", "validate"},
		{"empty command entry", "command: [\"\"]\nspecs: [a.js]\n", "validate"},
		{"no specs or suites", "command: [node]\n", "at least one of specs or suites"},
		{"empty suite", "command: [node]\nsuites:\n  smoke: []\n", "validate"},
		{"unknown field", "command: [node]\nspecs: [a.js]\nbrowser: chrome\n", "parse"},
		{"not yaml", "command: [node\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_SetsDirFromFile(t *testing.T) {
	dir := realPath(t, t.TempDir())
	path := filepath.Join(dir, "ci", "specretry.yaml")
	writeFile(t, path, "command: [node]\nspecs: [specs/*.js]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ci"), cfg.Dir())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read runner config")
}
