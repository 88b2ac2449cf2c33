package retry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Launcher starts one process and waits for it to exit.
type Launcher interface {
	Launch(ctx context.Context, command string, args []string) (int, error)
}

// ProcessLauncher runs the next attempt as a child process sharing the
// parent's stdin, stdout and stderr.
//
// The child is deliberately not tied to ctx: it is a complete specretry
// instance that owns its own lifecycle, and killing the parent leaves it
// running.
type ProcessLauncher struct{}

// Launch runs command and returns its exit code. err is non-nil only when the
// process could not be started or waited on; a non-zero exit is not an error.
func (ProcessLauncher) Launch(_ context.Context, command string, args []string) (int, error) {
	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("launch %s: %w", command, err)
}
