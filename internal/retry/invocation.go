package retry

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Flag names the re-invocation overrides.
const (
	FlagSpecs         = "specs"
	FlagSuite         = "suite"
	FlagRetry         = "retry"
	FlagDisableChecks = "disable-checks"
)

// Invocation is the command line of one attempt: the program, the flags the
// user set explicitly, and positional arguments forwarded to the runner.
type Invocation struct {
	Command string
	Flags   map[string]string
	Args    []string
}

// NextInvocation derives attempt+1's command line from prev. The explicit
// spec list replaces any suite selection, and config checks are disabled
// because a narrowed spec list is not something the validator expects.
func NextInvocation(prev Invocation, failed []string, attempt int) Invocation {
	flags := maps.Clone(prev.Flags)
	if flags == nil {
		flags = make(map[string]string)
	}

	units := slices.Clone(failed)
	slices.Sort(units)
	units = slices.Compact(units)
	specs := strings.Join(units, ",")

	flags[FlagSpecs] = specs
	if specs != "" {
		flags[FlagSuite] = ""
	} else {
		delete(flags, FlagSuite)
	}
	flags[FlagRetry] = strconv.Itoa(attempt + 1)
	flags[FlagDisableChecks] = "true"

	return Invocation{
		Command: prev.Command,
		Flags:   flags,
		Args:    slices.Clone(prev.Args),
	}
}

// Argv renders the flags as --name=value in name order, followed by
// "--" and the positional arguments when there are any.
func (inv Invocation) Argv() []string {
	names := slices.Sorted(maps.Keys(inv.Flags))

	argv := make([]string, 0, len(names)+len(inv.Args)+1)
	for _, name := range names {
		argv = append(argv, "--"+name+"="+inv.Flags[name])
	}
	if len(inv.Args) > 0 {
		argv = append(argv, "--")
		argv = append(argv, inv.Args...)
	}
	return argv
}

// String renders the full command for logging.
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Command}, inv.Argv()...), " ")
}
