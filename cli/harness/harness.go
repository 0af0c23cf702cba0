// Package harness builds the command lines handed to the underlying test
// harness and to the executor adapters that wrap single test invocations.
package harness

import (
	"strconv"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Command is the test harness binary the driver dispatches to.
const Command = "prove"

// Executor adapter names understood by the harness --exec flag. Each is a
// small external program that performs the mechanics of one submission
// style for a single test.
const (
	AdapterLSF     = "lsf-run"
	AdapterLSFTail = "lsf-tail-run"
	AdapterLSFLog  = "lsf-log-run"
	AdapterTracker = "track-run"
)

// Options describe the harness flags the driver prepends ahead of any
// user-supplied arguments and test paths.
type Options struct {
	Jobs    int    // worker-pool size, 0 means unset
	JUnit   bool   // timing-enabled JUnit-compatible formatter
	Adapter string // executor adapter name, empty for a plain run
}

// BuildFlags returns the driver-derived harness flags in their fixed
// order: job count, formatter selection, executor adapter.
func BuildFlags(opts Options) []string {
	var args []string

	if opts.Jobs > 0 {
		args = append(args, "-j", strconv.Itoa(opts.Jobs))
	}

	if opts.JUnit {
		args = append(args, "--timer", "--formatter", "TAP::Formatter::JUnit")
	}

	if opts.Adapter != "" {
		args = append(args, "--exec", opts.Adapter)
	}

	return args
}

// BuildArgs assembles the final harness argv: driver-derived flags first,
// then the user's own trailing arguments, then the tests to run.
func BuildArgs(opts Options, userArgs, tests []string) []string {
	args := BuildFlags(opts)
	args = append(args, userArgs...)
	return append(args, tests...)
}

// HookCommand renders the command line a history rewrite runs after each
// replayed commit: the driver itself, in direct mode, over just the commit
// being applied, followed by the user's remaining arguments.
func HookCommand(self string, args []string) string {
	parts := make([]string, 0, len(args)+3)
	parts = append(parts, shellescape.Quote(self), "--git", "HEAD^..HEAD")
	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}
