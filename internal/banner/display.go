// Package banner provides colored banner display functions for the specretry CLI.
//
// Banners go to stderr, next to the log lines, so the runner's stdout stays
// clean.
package banner

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/spec-retry/internal/logging"
)

// Output is where banners are written.
var Output io.Writer = os.Stderr

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// PrintStartupBanner displays the attempt header.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  specretry - failed spec re-runner
//	═══════════════════════════════════════════════════
//	  Session:    2f1c...
//	  Attempt:    1 of 2 retries
//	  Specs:      3
//	  Runner:     node run-specs.js
//	═══════════════════════════════════════════════════
func PrintStartupBanner(sessionID string, attempt int, maxAttempts int, units int, runner string) {
	sep := headerColor(rule)
	fmt.Fprintln(Output, sep)
	fmt.Fprintln(Output, headerColor("  specretry - failed spec re-runner"))
	fmt.Fprintln(Output, sep)
	if sessionID != "" {
		fmt.Fprintf(Output, "  Session:    %s\n", sessionID)
	}
	if maxAttempts > 0 {
		fmt.Fprintf(Output, "  Attempt:    %d of %d retries\n", attempt, maxAttempts)
	} else {
		fmt.Fprintln(Output, "  Attempt:    retries disabled")
	}
	fmt.Fprintf(Output, "  Specs:      %d\n", units)
	fmt.Fprintf(Output, "  Runner:     %s\n", runner)
	fmt.Fprintln(Output, sep)
}

// PrintOutcomeBanner displays how this attempt ended.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✗ exhausted_attempts
//	  Attempt:    2
//	  Exit code:  1
//	  Duration:   1m 3s (63s)
//	═══════════════════════════════════════════════════
func PrintOutcomeBanner(outcome string, attempt int, exitCode int, durationSecs int) {
	paint := errorColor
	mark := "✗"
	switch {
	case exitCode == 0:
		paint, mark = successColor, "✓"
	case outcome == "will_retry":
		paint, mark = warnColor, "↻"
	}

	sep := paint(rule)
	fmt.Fprintln(Output, sep)
	fmt.Fprintln(Output, paint(fmt.Sprintf("  %s %s", mark, outcome)))
	fmt.Fprintf(Output, "  Attempt:    %d\n", attempt)
	fmt.Fprintf(Output, "  Exit code:  %d\n", exitCode)
	fmt.Fprintf(Output, "  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Fprintln(Output, sep)
}

// PrintInterruptedBanner displays when the runner was interrupted.
func PrintInterruptedBanner(attempt int) {
	sep := warnColor(rule)
	fmt.Fprintln(Output, sep)
	fmt.Fprintln(Output, warnColor("  ⚠ Interrupted"))
	fmt.Fprintf(Output, "  Attempt:    %d\n", attempt)
	fmt.Fprintln(Output, "  No failures were recorded for this attempt")
	fmt.Fprintln(Output, sep)
}
