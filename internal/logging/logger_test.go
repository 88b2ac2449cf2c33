package logging_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/spec-retry/internal/logging"
)

func init() {
	// Disable color output in tests so assertions match plain text.
	color.NoColor = true
}

// capture redirects log output into a buffer for the duration of fn.
func capture(t *testing.T, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(nil)

	fn()
	return buf.String()
}

// ---------------------------------------------------------------------------
// FormatDuration tests
// ---------------------------------------------------------------------------

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "0s"},
		{45, "45s"},
		{90, "1m 30s"},
		{3661, "1h 1m 1s"},
		{7200, "2h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, logging.FormatDuration(tt.seconds))
		})
	}
}

// ---------------------------------------------------------------------------
// Text output tests
// ---------------------------------------------------------------------------

func TestLevelPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string)
		prefix string
	}{
		{"info", logging.Info, "[INFO]"},
		{"success", logging.Success, "[SUCCESS]"},
		{"warn", logging.Warn, "[WARN]"},
		{"error", logging.Error, "[ERROR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := capture(t, func() { tt.fn("test message") })
			assert.Contains(t, out, tt.prefix)
			assert.Contains(t, out, "test message")
		})
	}
}

func TestPhaseIncludesSeparators(t *testing.T) {
	out := capture(t, func() {
		logging.Phase("running tests")
	})
	assert.Contains(t, out, "[PHASE]")
	assert.Contains(t, out, "running tests")
	assert.Contains(t, out, "━━━━")
}

func TestDebugSuppressedWhenNotVerbose(t *testing.T) {
	logging.SetVerbose(false)
	out := capture(t, func() {
		logging.Debug("hidden")
	})
	assert.Empty(t, out)
}

func TestDebugShownWhenVerbose(t *testing.T) {
	logging.SetVerbose(true)
	defer logging.SetVerbose(false)

	out := capture(t, func() {
		logging.Debug("visible")
	})
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, "visible")
}

// ---------------------------------------------------------------------------
// Structured output tests
// ---------------------------------------------------------------------------

func TestSetFormatRejectsUnknown(t *testing.T) {
	err := logging.SetFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}

func TestStructuredFormat(t *testing.T) {
	require.NoError(t, logging.SetFormat(logging.FormatStructured))
	defer func() { _ = logging.SetFormat(logging.FormatText) }()

	out := capture(t, func() {
		logging.Warn("stack not resolved")
	})
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "stack not resolved")
	assert.NotContains(t, out, "[WARN]")
}

func TestStructuredDebugRespectsVerbose(t *testing.T) {
	require.NoError(t, logging.SetFormat(logging.FormatStructured))
	defer func() { _ = logging.SetFormat(logging.FormatText) }()

	out := capture(t, func() {
		logging.Debug("quiet")
	})
	assert.Empty(t, out)
}
