package retry

import "github.com/CodexForgeBR/spec-retry/internal/stacktrace"

// Resolve finds the spec file that produced a failure.
//
// Frames are scanned from the outermost call inward: matcher and helper
// frames sit at the top of a trace, while the call site inside the spec file
// sits near the bottom. The first frame whose normalized file is a known unit
// wins. ok is false when no frame matches.
func Resolve(stack string, known KnownUnits) (unit string, ok bool) {
	frames := stacktrace.Parse(stack)
	for i := len(frames) - 1; i >= 0; i-- {
		file := NormalizePath(frames[i].File)
		if known.Contains(file) {
			return file, true
		}
	}
	return "", false
}
