package reporter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single event line; stack traces can be long.
const maxLineSize = 4 * 1024 * 1024

// Stats summarizes one pass over an event stream.
type Stats struct {
	Events  int
	Skipped int
}

// ReadEvents decodes r line by line and calls handle for every valid event,
// in stream order. Blank lines are ignored; malformed lines are reported to
// onSkip (when non-nil) and skipped. A read error aborts the stream.
func ReadEvents(r io.Reader, handle func(Event), onSkip func(line int, err error)) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		ev, err := DecodeEvent(line)
		if err != nil {
			stats.Skipped++
			if onSkip != nil {
				onSkip(lineNo, err)
			}
			continue
		}

		stats.Events++
		handle(ev)
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read events: %w", err)
	}
	return stats, nil
}

// ReadEventsFile is ReadEvents over a file. A missing file means the runner
// never reported anything and yields zero stats without error.
func ReadEventsFile(path string, handle func(Event), onSkip func(line int, err error)) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Stats{}, nil
		}
		return Stats{}, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	return ReadEvents(f, handle, onSkip)
}
