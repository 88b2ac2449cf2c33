// Package runner starts one attempt of the external test runner.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/spec-retry/internal/reporter"
)

// Environment variables exported to the test runner.
const (
	AttemptEnv     = "SPECRETRY_ATTEMPT"
	MaxAttemptsEnv = "SPECRETRY_MAX_ATTEMPTS"
	LastAttemptEnv = "SPECRETRY_LAST_ATTEMPT"
)

// Attempt describes the run the test runner is asked to perform.
type Attempt struct {
	Number      int
	MaxAttempts int
	LastAttempt bool
	Units       []string
	// EventsFile is where the runner writes its NDJSON reporter events.
	EventsFile string
}

// TestRunner runs one attempt and returns the runner's exit code. err is
// reserved for failures to start or wait on the runner.
type TestRunner interface {
	Run(ctx context.Context, a Attempt) (int, error)
}

// CommandRunner implements TestRunner by executing a command line.
type CommandRunner struct {
	// Command is the runner program followed by its fixed arguments.
	Command []string
	// UnitFlag, when set, passes units as "<flag>=a,b" rather than as
	// trailing arguments.
	UnitFlag string
	// ExtraArgs are forwarded after the fixed arguments.
	ExtraArgs []string
}

// BuildArgs constructs the argument list (without the program name).
func (r *CommandRunner) BuildArgs(units []string) []string {
	args := make([]string, 0, len(r.Command)+len(r.ExtraArgs)+len(units))
	if len(r.Command) > 1 {
		args = append(args, r.Command[1:]...)
	}
	args = append(args, r.ExtraArgs...)
	if r.UnitFlag != "" {
		args = append(args, r.UnitFlag+"="+strings.Join(units, ","))
	} else {
		args = append(args, units...)
	}
	return args
}

// BuildEnv returns the parent's environment plus the attempt variables.
func BuildEnv(a Attempt) []string {
	return append(os.Environ(),
		reporter.EventsFileEnv+"="+a.EventsFile,
		AttemptEnv+"="+strconv.Itoa(a.Number),
		MaxAttemptsEnv+"="+strconv.Itoa(a.MaxAttempts),
		LastAttemptEnv+"="+strconv.FormatBool(a.LastAttempt),
	)
}

// Run executes the runner with inherited stdio. Cancelling ctx kills it.
func (r *CommandRunner) Run(ctx context.Context, a Attempt) (int, error) {
	if len(r.Command) == 0 {
		return -1, errors.New("runner command is empty")
	}

	cmd := exec.CommandContext(ctx, r.Command[0], r.BuildArgs(a.Units)...)
	cmd.Env = BuildEnv(a)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return -1, fmt.Errorf("runner interrupted: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("runner command failed: %w", err)
}
