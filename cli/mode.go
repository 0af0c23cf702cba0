package cli

// This file resolves raw command-line flags into a single coherent
// execution mode, enforcing exclusivity and applying defaults.

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/runtests/runtests/cli/harness"
	"github.com/runtests/runtests/model"
	"github.com/urfave/cli/v2"
)

// defaultJobs is the worker-pool size assumed for LSF and tracked runs
// when the user gives none. The same value feeds both the runtime
// estimate and the harness job flag; using different values would make
// the estimate misrepresent wall-clock time.
const defaultJobs = 10

var errIterateWithoutRange = errors.New("--iterate needs a --git revision range to walk")

// Options is the execution configuration resolved from the command line.
type Options struct {
	Track       bool
	LSF         bool
	LSFRedirect bool
	LSFTail     bool
	JUnit       bool
	Jobs        int // 0 means unspecified (sequential)
	Iterate     bool
	HaveRange   bool
	Range       model.RevRange
	Order       string
	DB          string
	DBPrefix    string
	ImpactCmd   string
	LogDir      string
}

func optionsFromContext(ctx *cli.Context) Options {
	opts := Options{
		Track:       ctx.Bool("track"),
		LSF:         ctx.Bool("lsf"),
		LSFRedirect: ctx.Bool("lsf-redirect"),
		LSFTail:     ctx.Bool("lsf-tail"),
		JUnit:       ctx.Bool("junit"),
		Jobs:        ctx.Int("jobs"),
		Iterate:     ctx.Bool("iterate"),
		Order:       ctx.String("order"),
		DB:          ctx.String("db"),
		DBPrefix:    ctx.String("db-prefix"),
		ImpactCmd:   ctx.String("impact-cmd"),
		LogDir:      ctx.String("log-dir"),
	}
	if ctx.IsSet("git") {
		opts.HaveRange = true
		opts.Range = model.RevRange(ctx.String("git"))
		if opts.Range == "" {
			opts.Range = model.DefaultRange
		}
	}
	return opts
}

// distributed reports whether any LSF submission style was requested.
func (o Options) distributed() bool {
	return o.LSF || o.LSFRedirect || o.LSFTail
}

// resolve enforces mode exclusivity and applies defaulting rules.
func (o *Options) resolve() error {
	if o.Track && o.distributed() {
		return fmt.Errorf("--track and --lsf are mutually exclusive: tracked runs execute locally so results can be recorded")
	}
	if o.Iterate && !o.HaveRange {
		return errIterateWithoutRange
	}
	if o.Jobs < 0 {
		return fmt.Errorf("--jobs must be positive, got %d", o.Jobs)
	}
	if o.Jobs == 0 && (o.Track || o.distributed()) {
		o.Jobs = defaultJobs
	}
	if o.Order != orderNone && o.Order != orderAlternate {
		return fmt.Errorf("unknown --order policy %q (want %s or %s)", o.Order, orderNone, orderAlternate)
	}
	return nil
}

// adapter returns the executor adapter name for the resolved mode, or ""
// for a plain local run.
func (o Options) adapter() string {
	switch {
	case o.Track:
		return harness.AdapterTracker
	case o.LSFTail:
		return harness.AdapterLSFTail
	case o.LSFRedirect:
		return harness.AdapterLSFLog
	case o.LSF:
		return harness.AdapterLSF
	}
	return ""
}

func (o Options) harnessOptions() harness.Options {
	return harness.Options{
		Jobs:    o.Jobs,
		JUnit:   o.JUnit,
		Adapter: o.adapter(),
	}
}

// dbPath returns the history store directory, defaulting to a dot
// directory at the repository root.
func (o Options) dbPath(repoRoot string) string {
	if o.DB != "" {
		return o.DB
	}
	return filepath.Join(repoRoot, ".runtests", "history")
}
