// Package logging provides colored, leveled log output for the specretry CLI.
//
// All output functions write a prefixed, color-coded line to stderr so that
// the test runner keeps sole ownership of stdout. Debug output is suppressed
// unless verbose mode is enabled via SetVerbose(true).
//
// SetFormat(FormatStructured) switches every function to key/value output
// through log/slog, which is easier to grep in CI logs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Output formats accepted by SetFormat.
const (
	FormatText       = "text"
	FormatStructured = "structured"
)

// verbose controls whether Debug() produces output.
var verbose bool

var (
	output     io.Writer = os.Stderr
	structured *slog.Logger
)

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	phasePrefix   = color.New(color.FgCyan).SprintFunc()
	debugPrefix   = color.New(color.FgBlue).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	verbose = v
	if structured != nil {
		structured = newStructured(output)
	}
}

// SetOutput redirects all log output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output = w
	if structured != nil {
		structured = newStructured(output)
	}
}

// SetFormat selects between colored text lines and structured slog output.
func SetFormat(format string) error {
	switch format {
	case "", FormatText:
		structured = nil
	case FormatStructured:
		structured = newStructured(output)
	default:
		return fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatText, FormatStructured)
	}
	return nil
}

func newStructured(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
	}))
}

// Info prints an informational message in blue.
func Info(msg string) {
	if structured != nil {
		structured.Info(msg)
		return
	}
	fmt.Fprintln(output, infoPrefix("[INFO]")+" "+msg)
}

// Success prints a success message in green.
func Success(msg string) {
	if structured != nil {
		structured.Info(msg, "result", "success")
		return
	}
	fmt.Fprintln(output, successPrefix("[SUCCESS]")+" "+msg)
}

// Warn prints a warning message in yellow.
func Warn(msg string) {
	if structured != nil {
		structured.Warn(msg)
		return
	}
	fmt.Fprintln(output, warnPrefix("[WARN]")+" "+msg)
}

// Error prints an error message in red.
func Error(msg string) {
	if structured != nil {
		structured.Error(msg)
		return
	}
	fmt.Fprintln(output, errorPrefix("[ERROR]")+" "+msg)
}

// Phase prints a phase header in cyan, surrounded by separator lines.
func Phase(msg string) {
	if structured != nil {
		structured.Info(msg, "phase", true)
		return
	}
	sep := phasePrefix("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(output, sep)
	fmt.Fprintln(output, phasePrefix("[PHASE]")+" "+msg)
	fmt.Fprintln(output, sep)
}

// Debug prints a debug message in blue, only when verbose mode is enabled.
func Debug(msg string) {
	if !verbose {
		return
	}
	if structured != nil {
		structured.Debug(msg)
		return
	}
	fmt.Fprintln(output, debugPrefix("[DEBUG]")+" "+msg)
}

// Highlight renders s in yellow for embedding inside another log message.
func Highlight(s string) string {
	return color.New(color.FgYellow).Sprint(s)
}

// FormatDuration converts a duration in seconds to a human-readable string.
//
// Examples:
//
//	FormatDuration(0)    => "0s"
//	FormatDuration(45)   => "45s"
//	FormatDuration(90)   => "1m 30s"
//	FormatDuration(3661) => "1h 1m 1s"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
