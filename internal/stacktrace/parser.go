// Package stacktrace parses textual stack traces into frames.
//
// Supported layouts:
//   - V8 / Node.js:  "    at fn (/abs/spec.js:10:5)" and "    at /abs/spec.js:10:5"
//   - Gecko / JSC:   "fn@/abs/spec.js:10:5"
//   - Go panics:     "\t/abs/pkg/file.go:42 +0x1d"
//   - Python:        "  File \"/abs/test.py\", line 3, in test_it"
//
// Lines that match none of these (error messages, "<anonymous>" frames,
// native frames) are skipped.
package stacktrace

import (
	"regexp"
	"strconv"
	"strings"
)

// Frame is one parsed stack frame. Line and Column are zero when unknown.
type Frame struct {
	Function string
	File     string
	Line     int
	Column   int
}

var (
	// location matches "file:line" or "file:line:col" anchored at the end.
	// The lazy file group keeps drive letters and file:// URLs intact.
	locationRe = regexp.MustCompile(`^(.*?):(\d+)(?::(\d+))?$`)

	geckoRe  = regexp.MustCompile(`^\s*([^@\s]*)@(.+)$`)
	goRe     = regexp.MustCompile(`^\s+(\S+):(\d+)(?:\s+\+0x[0-9a-fA-F]+)?\s*$`)
	pythonRe = regexp.MustCompile(`^\s*File "(.+)", line (\d+)(?:, in (.+))?\s*$`)
)

// Parse splits stack into frames, preserving the order of the trace
// (innermost call first for every supported layout).
func Parse(stack string) []Frame {
	if strings.TrimSpace(stack) == "" {
		return nil
	}

	var frames []Frame
	for _, line := range strings.Split(stack, "\n") {
		line = strings.TrimRight(line, "\r")
		if f, ok := parseLine(line); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

func parseLine(line string) (Frame, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Frame{}, false
	}

	if strings.HasPrefix(trimmed, "at ") {
		return parseV8(strings.TrimSpace(strings.TrimPrefix(trimmed, "at ")))
	}

	if m := pythonRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		return Frame{Function: m[3], File: m[1], Line: n}, true
	}

	if m := goRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		return Frame{File: m[1], Line: n}, true
	}

	if m := geckoRe.FindStringSubmatch(trimmed); m != nil {
		f, ok := parseLocation(m[2])
		if !ok {
			return Frame{}, false
		}
		f.Function = m[1]
		return f, true
	}

	return Frame{}, false
}

// parseV8 handles the part after "at ": either "fn (location)" or "location".
func parseV8(rest string) (Frame, bool) {
	fn := ""
	loc := rest
	if strings.HasSuffix(rest, ")") {
		if open := strings.LastIndex(rest, " ("); open >= 0 {
			fn = rest[:open]
			loc = rest[open+2 : len(rest)-1]
		}
	}
	fn = strings.TrimPrefix(fn, "async ")

	f, ok := parseLocation(loc)
	if !ok {
		return Frame{}, false
	}
	f.Function = fn
	return f, true
}

func parseLocation(loc string) (Frame, bool) {
	m := locationRe.FindStringSubmatch(strings.TrimSpace(loc))
	if m == nil || m[1] == "" {
		return Frame{}, false
	}
	f := Frame{File: m[1]}
	f.Line, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		f.Column, _ = strconv.Atoi(m[3])
	}
	return f, true
}
