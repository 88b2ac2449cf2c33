// Package exitcode defines the exit codes specretry produces on its own.
//
// Exit codes of the external test runner and of re-invoked attempts are
// passed through unchanged; these constants only cover conditions that
// specretry itself terminates on.
package exitcode

// Exit codes owned by specretry.
const (
	Success     = 0   // Runner passed, or nothing to do
	Error       = 1   // Invalid args, unreadable config, launch failure
	Interrupted = 130 // SIGINT/SIGTERM received while the runner was active
)

// Name returns the human-readable name for the given exit code.
// Codes that specretry does not own return "passthrough".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Interrupted:
		return "Interrupted"
	default:
		return "passthrough"
	}
}
