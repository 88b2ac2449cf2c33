package runnerconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// BuiltInSpec is a bookkeeping spec some runners inject into every run. It
// never counts as a unit.
const BuiltInSpec = "__protractor_internal_afterEach_setup_spec.js"

// Selection is the command-line narrowing of the configured specs. An
// explicit spec list takes precedence over a suite.
type Selection struct {
	// Specs are paths or patterns relative to the working directory.
	Specs []string
	// Suite is a comma-separated list of suite names.
	Suite string
}

// SplitList splits a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ResolveUnits expands sel against the config into absolute, cleaned spec
// paths in match order, with excludes and the built-in spec removed.
func (c *Config) ResolveUnits(sel Selection) ([]string, error) {
	var patterns []string
	var base string

	switch {
	case len(sel.Specs) > 0:
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve specs: %w", err)
		}
		patterns, base = sel.Specs, wd
	case sel.Suite != "":
		for _, name := range SplitList(sel.Suite) {
			suite, ok := c.Suites[name]
			if !ok {
				return nil, fmt.Errorf("unknown suite %q", name)
			}
			patterns = append(patterns, suite...)
		}
		base = c.Dir()
	default:
		patterns, base = c.Specs, c.Dir()
	}

	var units []string
	seen := make(map[string]struct{})
	for _, p := range patterns {
		matches, err := expand(base, p)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok || c.excluded(m) {
				continue
			}
			seen[m] = struct{}{}
			units = append(units, m)
		}
	}

	if len(units) == 0 {
		return nil, errors.New("spec patterns did not match any files")
	}
	return units, nil
}

// Check validates sel strictly: a spec list and a suite may not be combined,
// suites must exist and every spec pattern must match at least one file.
// Re-invocations skip it with --disable-checks.
func (c *Config) Check(sel Selection) error {
	if len(sel.Specs) > 0 && sel.Suite != "" {
		return errors.New("--specs and --suite cannot be used together")
	}
	for _, name := range SplitList(sel.Suite) {
		if _, ok := c.Suites[name]; !ok {
			return fmt.Errorf("unknown suite %q (available: %s)", name, strings.Join(c.SuiteNames(), ", "))
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("check specs: %w", err)
	}
	for _, p := range sel.Specs {
		matches, err := expand(wd, p)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("spec pattern %q did not match any files", p)
		}
	}
	return nil
}

// SuiteNames returns the configured suite names sorted.
func (c *Config) SuiteNames() []string {
	names := make([]string, 0, len(c.Suites))
	for name := range c.Suites {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Config) excluded(path string) bool {
	if strings.Contains(path, BuiltInSpec) {
		return true
	}
	for _, ex := range c.Exclude {
		pattern := absPattern(c.Dir(), ex)
		if ok, err := doublestar.PathMatch(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

func absPattern(base, p string) string {
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// expand returns the regular files matching pattern p. Plain paths are
// returned as-is when they exist.
func expand(base, p string) ([]string, error) {
	pattern := absPattern(base, p)

	if !strings.ContainsAny(p, "*?[{") {
		info, err := os.Stat(pattern)
		if err != nil || info.IsDir() {
			return nil, nil
		}
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad spec pattern %q: %w", p, err)
	}
	for i, m := range matches {
		matches[i] = filepath.Clean(m)
	}
	return matches, nil
}
