package state

// Session is the audit record of one retry chain. It is written to
// <resultDir>/session.json and extended by every attempt of the chain.
type Session struct {
	SchemaVersion int            `json:"schema_version"`
	SessionID     string         `json:"session_id"`
	StartedAt     string         `json:"started_at"`
	LastUpdated   string         `json:"last_updated"`
	MaxAttempts   int            `json:"max_attempts"`
	Units         int            `json:"units"`
	Attempts      []AttemptEntry `json:"attempts"`
}

// AttemptEntry records how a single attempt ended.
type AttemptEntry struct {
	Attempt     int    `json:"attempt"`
	ExitCode    int    `json:"exit_code"`
	FailedUnits int    `json:"failed_units"`
	Outcome     string `json:"outcome"`
	FinishedAt  string `json:"finished_at"`
}

// SchemaVersion is the current session file layout.
const SchemaVersion = 1
