package retry

import (
	"bytes"
	"path/filepath"
	"slices"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/CodexForgeBR/spec-retry/internal/logging"
	"github.com/CodexForgeBR/spec-retry/internal/reporter"
)

func init() {
	color.NoColor = true
}

func frame(path string) string {
	return "Error\n    at UserContext.<anonymous> (" + path + ":1:1)"
}

func failedEvent(kind reporter.Kind, stacks ...string) reporter.Event {
	ev := reporter.Event{Kind: kind}
	for _, s := range stacks {
		ev.FailedExpectations = append(ev.FailedExpectations, reporter.Failure{Message: "failed", Stack: s})
	}
	return ev
}

func TestAccumulator_CollectsResolvedUnits(t *testing.T) {
	a := filepath.FromSlash("/w/a.spec.js")
	b := filepath.FromSlash("/w/b.spec.js")
	c := filepath.FromSlash("/w/c.spec.js")
	acc := NewAccumulator(NewKnownUnits([]string{a, b, c}))

	acc.OnEvent(failedEvent(reporter.KindSpecDone, frame(b)))
	acc.OnEvent(failedEvent(reporter.KindSpecDone))
	acc.OnEvent(failedEvent(reporter.KindSpecDone, frame(a), frame(b)))

	expected := []string{a, b}
	slices.Sort(expected)
	assert.Equal(t, expected, acc.Units())
	assert.Equal(t, 2, acc.Len())
}

func TestAccumulator_RepeatedEventsAreIdempotent(t *testing.T) {
	a := filepath.FromSlash("/w/a.spec.js")
	acc := NewAccumulator(NewKnownUnits([]string{a}))

	// A spec failure followed by the suite and run level reports of the same
	// failure.
	acc.OnEvent(failedEvent(reporter.KindSpecDone, frame(a)))
	acc.OnEvent(failedEvent(reporter.KindSuiteDone, frame(a)))
	acc.OnEvent(failedEvent(reporter.KindRunDone, frame(a)))

	assert.Equal(t, []string{a}, acc.Units())
}

func TestAccumulator_UnresolvedMarksEveryKnownUnit(t *testing.T) {
	units := []string{
		filepath.FromSlash("/w/a.spec.js"),
		filepath.FromSlash("/w/b.spec.js"),
		filepath.FromSlash("/w/c.spec.js"),
	}
	acc := NewAccumulator(NewKnownUnits(units))

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(nil)

	acc.OnEvent(failedEvent(reporter.KindRunDone, "    at fn (/elsewhere/lib.js:1:1)"))

	expected := slices.Clone(units)
	slices.Sort(expected)
	assert.Equal(t, expected, acc.Units())

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "treating all spec files as failed")
	assert.Contains(t, out, "/elsewhere/lib.js")
}

func TestAccumulator_EmptyStackFallsBackToAll(t *testing.T) {
	units := []string{filepath.FromSlash("/w/a.spec.js"), filepath.FromSlash("/w/b.spec.js")}
	acc := NewAccumulator(NewKnownUnits(units))

	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(nil)

	acc.OnEvent(failedEvent(reporter.KindSuiteDone, ""))
	assert.Equal(t, 2, acc.Len())
}
