package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CodexForgeBR/spec-retry/internal/logging"
	"github.com/CodexForgeBR/spec-retry/internal/reporter"
)

// Options configures a Retrier. It is fixed once Configure succeeds.
type Options struct {
	MaxAttempts int
	ResultDir   string
}

// Retrier wires the resolver, accumulator, store and decision for a single
// attempt. Call order: Configure, Prepare, OnEvent*, PostResults, AfterLaunch.
type Retrier struct {
	// Invocation is the current process's command line; the next attempt is
	// derived from it.
	Invocation Invocation
	// Launcher starts the next attempt. Defaults to ProcessLauncher.
	Launcher Launcher
	// OnDecision, when set, is called with the outcome after it is decided
	// and before any next attempt is launched.
	OnDecision func(Outcome)

	attempt int
	opts    Options
	state   State
	store   *Store
	acc     *Accumulator
}

// New returns an unconfigured Retrier for the given attempt ordinal
// (0 for the original run).
func New(attempt int) *Retrier {
	return &Retrier{attempt: attempt, state: StateNotInitialized}
}

// Configure supplies the retry options and moves the Retrier to StateReady.
func (r *Retrier) Configure(opts Options) error {
	if r.state != StateNotInitialized {
		return errors.New("retry: already configured")
	}
	if r.attempt < 0 {
		return fmt.Errorf("retry: attempt must be >= 0, got %d", r.attempt)
	}
	if opts.MaxAttempts > 0 && opts.ResultDir == "" {
		return errors.New("retry: result directory is required")
	}
	r.opts = opts
	r.store = NewStore(opts.ResultDir)
	r.state = StateReady
	return nil
}

// State returns the current lifecycle state.
func (r *Retrier) State() State { return r.state }

// Attempt returns the attempt ordinal this process runs.
func (r *Retrier) Attempt() int { return r.attempt }

// Store returns the attempt store, or nil before Configure.
func (r *Retrier) Store() *Store { return r.store }

// Enabled reports whether retries are configured at all.
func (r *Retrier) Enabled() bool {
	return r.state != StateNotInitialized && r.opts.MaxAttempts > 0
}

// IsLastAttempt reports whether this attempt is the final one allowed.
func (r *Retrier) IsLastAttempt() (bool, error) {
	if r.state == StateNotInitialized {
		return false, fmt.Errorf("is last attempt: %w", ErrNotInitialized)
	}
	return r.attempt >= r.opts.MaxAttempts, nil
}

// Prepare starts collecting failures for known. The first attempt of a
// fresh run clears the result directory so stale records from an unrelated
// run cannot leak in. With retries disabled Prepare does nothing.
func (r *Retrier) Prepare(known KnownUnits) error {
	if r.state == StateNotInitialized {
		return fmt.Errorf("prepare: %w", ErrNotInitialized)
	}
	if !r.Enabled() {
		return nil
	}

	r.acc = NewAccumulator(known)

	if r.attempt == 0 {
		if err := r.store.Reset(); err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		logging.Debug(fmt.Sprintf("Cleared result directory %s", r.store.Dir()))
	}
	return nil
}

// OnEvent feeds one reporter event to the accumulator.
func (r *Retrier) OnEvent(ev reporter.Event) {
	if r.acc == nil {
		return
	}
	r.acc.OnEvent(ev)
}

// FailedUnits returns the failures collected so far in this attempt.
func (r *Retrier) FailedUnits() []string {
	if r.acc == nil {
		return nil
	}
	return r.acc.Units()
}

// PostResults persists this attempt's failures. It must complete before
// AfterLaunch reads them.
func (r *Retrier) PostResults() error {
	if r.state == StateNotInitialized {
		return fmt.Errorf("post results: %w", ErrNotInitialized)
	}
	if !r.Enabled() || r.acc == nil {
		return nil
	}
	if err := r.store.Append(r.attempt, r.acc.Units()); err != nil {
		return fmt.Errorf("post results: %w", err)
	}
	return nil
}

// AfterLaunch decides what to do with the runner's exit code. On
// StateWillRetry it launches the next attempt, waits for it and returns its
// exit code; every other outcome returns exitCode unchanged.
func (r *Retrier) AfterLaunch(ctx context.Context, exitCode int) (Outcome, error) {
	if r.state == StateNotInitialized {
		return Outcome{ExitCode: exitCode}, fmt.Errorf("after launch: %w", ErrNotInitialized)
	}

	var failed []string
	if r.opts.MaxAttempts > 0 {
		failed = r.store.Read(r.attempt)
	}

	out := Decide(exitCode, r.attempt, r.opts.MaxAttempts, failed)
	r.state = out.State

	switch out.State {
	case StateSucceeded:
		if r.attempt > 0 {
			logging.Success(fmt.Sprintf("Test passed after %d attempts", r.attempt))
		}
	case StateExhaustedAttempts:
		logging.Warn(fmt.Sprintf("Test failed after %d attempts, exiting with code %d", r.attempt, exitCode))
	case StateNoFailuresToRetry:
		logging.Warn(fmt.Sprintf("Hasn't collected any failed specs, nothing to retry, exiting with code %d", exitCode))
	}

	if r.OnDecision != nil {
		r.OnDecision(out)
	}
	if out.State != StateWillRetry {
		return out, nil
	}

	code, err := r.relaunch(ctx, out.Units)
	out.ExitCode = code
	return out, err
}

func (r *Retrier) relaunch(ctx context.Context, failed []string) (int, error) {
	next := NextInvocation(r.Invocation, failed, r.attempt)

	logging.Info(fmt.Sprintf("Re-running tests, attempt: %d", r.attempt+1))
	logging.Info(fmt.Sprintf("Re-running the following test files: %s", strings.Join(failed, ",")))
	logging.Info(fmt.Sprintf("Running command %s", next))

	launcher := r.Launcher
	if launcher == nil {
		launcher = ProcessLauncher{}
	}
	return launcher.Launch(ctx, next.Command, next.Argv())
}
