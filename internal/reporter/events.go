// Package reporter decodes the event stream a test runner emits while an
// attempt executes.
//
// The runner writes one JSON object per line to the file named by the
// SPECRETRY_EVENTS_FILE environment variable:
//
//	{"type":"spec_done","name":"login works","failed_expectations":[{"message":"...","stack":"..."}]}
//	{"type":"suite_done","name":"login","failed_expectations":[]}
//	{"type":"run_done","failed_expectations":[]}
package reporter

import (
	"encoding/json"
	"fmt"
)

// EventsFileEnv names the environment variable holding the events file path.
const EventsFileEnv = "SPECRETRY_EVENTS_FILE"

// Kind tags the variant of an Event.
type Kind string

// Event kinds, one per reporter hook.
const (
	KindSpecDone  Kind = "spec_done"
	KindSuiteDone Kind = "suite_done"
	KindRunDone   Kind = "run_done"
)

// Failure is one failed expectation. Stack may be empty when the runner
// could not capture one.
type Failure struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// Event is a single reporter notification.
type Event struct {
	Kind               Kind      `json:"type"`
	Name               string    `json:"name,omitempty"`
	FailedExpectations []Failure `json:"failed_expectations"`
}

// Failed reports whether the event carries at least one failure.
func (e Event) Failed() bool {
	return len(e.FailedExpectations) > 0
}

// Validate checks the event shape at the boundary where the runner hands
// it in.
func (e Event) Validate() error {
	switch e.Kind {
	case KindSpecDone, KindSuiteDone, KindRunDone:
		return nil
	case "":
		return fmt.Errorf("event has no type")
	default:
		return fmt.Errorf("unknown event type %q", e.Kind)
	}
}

// DecodeEvent parses and validates one NDJSON line.
func DecodeEvent(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}
