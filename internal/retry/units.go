// Package retry maps test failures back to spec files, records them per
// attempt and decides whether to re-invoke the runner with only the failed
// specs.
//
// Each attempt is a separate process. Attempt N appends its failures to
// <resultDir>/<N+1>.json and, if another attempt is allowed, launches a new
// specretry process with --retry=N+1 and --specs set to those failures. That
// child is awaited, so the chain of attempts unwinds with the exit code of
// the last one.
package retry

import (
	"path/filepath"
	"strings"
)

// NormalizePath turns a file reference from a stack frame or config into a
// unit identifier. file:// URLs are reduced to their path. Identifiers are
// compared as exact strings: case and symlinks are not folded.
func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "file://")
	if p == "" {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(p))
}

// KnownUnits is the ordered roster of spec files taking part in an attempt.
// It is read-only after construction.
type KnownUnits struct {
	order []string
	index map[string]struct{}
}

// NewKnownUnits normalizes and deduplicates paths, keeping first-seen order.
func NewKnownUnits(paths []string) KnownUnits {
	k := KnownUnits{index: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		id := NormalizePath(p)
		if id == "" {
			continue
		}
		if _, ok := k.index[id]; ok {
			continue
		}
		k.index[id] = struct{}{}
		k.order = append(k.order, id)
	}
	return k
}

// Contains reports whether id (already normalized) is a known unit.
func (k KnownUnits) Contains(id string) bool {
	_, ok := k.index[id]
	return ok
}

// All returns a copy of the roster in order.
func (k KnownUnits) All() []string {
	return append([]string(nil), k.order...)
}

// Len returns the number of known units.
func (k KnownUnits) Len() int {
	return len(k.order)
}
