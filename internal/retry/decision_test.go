package retry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_Branches(t *testing.T) {
	failed := []string{"/w/a.js"}

	tests := []struct {
		name        string
		exitCode    int
		attempt     int
		maxAttempts int
		failed      []string
		state       State
		code        int
	}{
		{"disabled with zero max", 1, 0, 0, failed, StateDisabled, 1},
		{"disabled with negative max", 7, 3, -1, failed, StateDisabled, 7},
		{"succeeded on first run", 0, 0, 2, nil, StateSucceeded, 0},
		{"succeeded on retry", 0, 2, 2, failed, StateSucceeded, 0},
		{"exhausted at boundary", 1, 2, 2, failed, StateExhaustedAttempts, 1},
		{"exhausted past boundary", 3, 5, 2, failed, StateExhaustedAttempts, 3},
		{"no failures recorded", 1, 0, 2, nil, StateNoFailuresToRetry, 1},
		{"no failures recorded empty slice", 4, 1, 2, []string{}, StateNoFailuresToRetry, 4},
		{"will retry one below boundary", 1, 1, 2, failed, StateWillRetry, 1},
		{"will retry first run", 1, 0, 2, failed, StateWillRetry, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Decide(tt.exitCode, tt.attempt, tt.maxAttempts, tt.failed)
			assert.Equal(t, tt.state, out.State)
			assert.Equal(t, tt.code, out.ExitCode)
			if tt.state == StateWillRetry {
				assert.Equal(t, tt.failed, out.Units)
			} else {
				assert.Empty(t, out.Units)
			}
		})
	}
}

func TestDecide_DisabledIgnoresEverythingElse(t *testing.T) {
	for _, maxAttempts := range []int{0, -1, -10} {
		for _, exitCode := range []int{0, 1, 2, 255} {
			for _, attempt := range []int{0, 1, 5} {
				for _, failed := range [][]string{nil, {"/w/a.js"}} {
					out := Decide(exitCode, attempt, maxAttempts, failed)
					assert.Equal(t, StateDisabled, out.State)
					assert.Equal(t, exitCode, out.ExitCode)
				}
			}
		}
	}
}

func TestDecide_ZeroExitAlwaysSucceeds(t *testing.T) {
	for _, attempt := range []int{0, 1, 2, 3, 10} {
		for _, failed := range [][]string{nil, {"/w/a.js", "/w/b.js"}} {
			out := Decide(0, attempt, 2, failed)
			assert.Equal(t, StateSucceeded, out.State)
			assert.Zero(t, out.ExitCode)
		}
	}
}

func TestDecide_Boundary(t *testing.T) {
	failed := []string{"/w/a.js"}
	for _, maxAttempts := range []int{1, 2, 5} {
		assert.Equal(t, StateExhaustedAttempts, Decide(1, maxAttempts, maxAttempts, failed).State)
		assert.Equal(t, StateWillRetry, Decide(1, maxAttempts-1, maxAttempts, failed).State)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not_initialized", StateNotInitialized.String())
	assert.Equal(t, "will_retry", StateWillRetry.String())
	assert.Equal(t, "state(99)", State(99).String())
}
