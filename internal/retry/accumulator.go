package retry

import (
	"fmt"
	"slices"

	"github.com/CodexForgeBR/spec-retry/internal/logging"
	"github.com/CodexForgeBR/spec-retry/internal/reporter"
)

// Accumulator collects the failed units of the current attempt from
// reporter events. It is not safe for concurrent use.
type Accumulator struct {
	known  KnownUnits
	failed map[string]struct{}
}

// NewAccumulator returns an empty accumulator bound to known.
func NewAccumulator(known KnownUnits) *Accumulator {
	return &Accumulator{
		known:  known,
		failed: make(map[string]struct{}),
	}
}

// OnEvent records the unit behind every failed expectation in ev. A failure
// whose unit cannot be resolved marks every known unit as failed.
func (a *Accumulator) OnEvent(ev reporter.Event) {
	for _, f := range ev.FailedExpectations {
		if unit, ok := Resolve(f.Stack, a.known); ok {
			a.failed[unit] = struct{}{}
			continue
		}

		logging.Warn("Failed to extract the failed spec file, treating all spec files as failed.")
		logging.Warn(fmt.Sprintf("The %s stack is: %s", ev.Kind, logging.Highlight(f.Stack)))
		for _, unit := range a.known.order {
			a.failed[unit] = struct{}{}
		}
	}
}

// Units returns the failed units in sorted order.
func (a *Accumulator) Units() []string {
	units := make([]string, 0, len(a.failed))
	for u := range a.failed {
		units = append(units, u)
	}
	slices.Sort(units)
	return units
}

// Len returns the number of distinct failed units.
func (a *Accumulator) Len() int {
	return len(a.failed)
}
