package phases

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/CodexForgeBR/spec-retry/internal/banner"
	"github.com/CodexForgeBR/spec-retry/internal/exitcode"
	"github.com/CodexForgeBR/spec-retry/internal/logging"
	"github.com/CodexForgeBR/spec-retry/internal/reporter"
	"github.com/CodexForgeBR/spec-retry/internal/retry"
	"github.com/CodexForgeBR/spec-retry/internal/runner"
	"github.com/CodexForgeBR/spec-retry/internal/signal"
)

// outcomeInterrupted is recorded in the session when the runner was stopped
// by a signal.
const outcomeInterrupted = "interrupted"

// phaseRunTests runs the test runner and feeds its events to the retrier.
// It returns the runner's exit code, and a non-negative process exit code
// when the attempt must stop here.
func (o *Orchestrator) phaseRunTests(ctx context.Context) (int, int) {
	logging.Phase("Running tests")

	events, err := os.CreateTemp("", "specretry-events-*.ndjson")
	if err != nil {
		logging.Error(fmt.Sprintf("Failed to create events file: %v", err))
		return 0, exitcode.Error
	}
	eventsPath := events.Name()
	events.Close()
	defer os.Remove(eventsPath)

	last, err := o.retrier.IsLastAttempt()
	if err != nil {
		logging.Error(err.Error())
		return 0, exitcode.Error
	}

	runCtx, stop := signal.Watch(ctx, func() {
		logging.Warn("Interrupt received, stopping the test runner")
	})
	exitCode, err := o.Runner.Run(runCtx, runner.Attempt{
		Number:      o.Config.Retry,
		MaxAttempts: o.Config.MaxAttempts,
		LastAttempt: last,
		Units:       o.known.All(),
		EventsFile:  eventsPath,
	})
	interrupted := runCtx.Err() != nil && ctx.Err() == nil
	stop()

	if err != nil {
		if interrupted || errors.Is(err, context.Canceled) {
			banner.PrintInterruptedBanner(o.Config.Retry)
			o.record(exitcode.Interrupted, 0, outcomeInterrupted)
			return 0, exitcode.Interrupted
		}
		logging.Error(fmt.Sprintf("Test runner failed: %v", err))
		return 0, exitcode.Error
	}
	logging.Info(fmt.Sprintf("Test runner exited with code %d", exitCode))

	stats, err := reporter.ReadEventsFile(eventsPath, o.retrier.OnEvent, func(line int, err error) {
		logging.Warn(fmt.Sprintf("Skipping malformed reporter event on line %d: %v", line, err))
	})
	if err != nil {
		logging.Warn(fmt.Sprintf("Failed to read reporter events: %v", err))
	}
	logging.Debug(fmt.Sprintf("Read %d reporter events (%d skipped)", stats.Events, stats.Skipped))

	if err := o.retrier.PostResults(); err != nil {
		logging.Error(fmt.Sprintf("Failed to record failed specs: %v", err))
	}
	return exitCode, -1
}

// phaseDecide hands the runner's exit code to the retrier and returns the
// final exit code, which is the re-invoked child's when a retry ran.
func (o *Orchestrator) phaseDecide(ctx context.Context, exitCode int) int {
	o.retrier.OnDecision = func(out retry.Outcome) {
		o.record(out.ExitCode, len(o.retrier.FailedUnits()), out.State.String())
		banner.PrintOutcomeBanner(out.State.String(), o.Config.Retry, out.ExitCode, o.elapsedSecs())
	}

	out, err := o.retrier.AfterLaunch(ctx, exitCode)
	if err != nil {
		logging.Error(fmt.Sprintf("Failed to re-run tests: %v", err))
		return exitcode.Error
	}
	return out.ExitCode
}
