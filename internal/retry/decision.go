package retry

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by Retrier queries made before Configure.
var ErrNotInitialized = errors.New("retry: not initialized, call Configure first")

// State is the lifecycle position of a Retrier.
type State int

// Retrier states. The last five are terminal outcomes of AfterLaunch.
const (
	StateNotInitialized State = iota
	StateReady
	StateDisabled
	StateSucceeded
	StateExhaustedAttempts
	StateNoFailuresToRetry
	StateWillRetry
)

var stateNames = map[State]string{
	StateNotInitialized:    "not_initialized",
	StateReady:             "ready",
	StateDisabled:          "disabled",
	StateSucceeded:         "succeeded",
	StateExhaustedAttempts: "exhausted_attempts",
	StateNoFailuresToRetry: "no_failures_to_retry",
	StateWillRetry:         "will_retry",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome is the verdict on a finished attempt.
type Outcome struct {
	State    State
	ExitCode int
	// Units holds the specs to re-run; only set for StateWillRetry.
	Units []string
}

// Decide classifies a finished attempt. It is pure: the stored failures must
// already have been read for attempt.
//
//   - maxAttempts <= 0           → Disabled, exit code passed through
//   - exitCode == 0              → Succeeded
//   - attempt >= maxAttempts     → ExhaustedAttempts
//   - no stored failures         → NoFailuresToRetry
//   - otherwise                  → WillRetry with the stored failures
func Decide(exitCode, attempt, maxAttempts int, failed []string) Outcome {
	switch {
	case maxAttempts <= 0:
		return Outcome{State: StateDisabled, ExitCode: exitCode}
	case exitCode == 0:
		return Outcome{State: StateSucceeded, ExitCode: 0}
	case attempt >= maxAttempts:
		return Outcome{State: StateExhaustedAttempts, ExitCode: exitCode}
	case len(failed) == 0:
		return Outcome{State: StateNoFailuresToRetry, ExitCode: exitCode}
	default:
		return Outcome{State: StateWillRetry, ExitCode: exitCode, Units: failed}
	}
}
