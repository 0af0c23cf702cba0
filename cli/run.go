package cli

// This file holds the top-level orchestration: mode resolution, pruning,
// test-set resolution, estimation, and the hand-off to the harness.

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

func (a *App) run(ctx *cli.Context) error {
	opts := optionsFromContext(ctx)
	if err := opts.resolve(); err != nil {
		if errors.Is(err, errIterateWithoutRange) {
			// Distinct exit code so scripts can tell a misuse of
			// --iterate from the generic configuration die path.
			return cli.Exit(err.Error(), 128)
		}
		return err
	}

	// Trailing arguments: explicit test paths plus harness pass-through
	// flags, forwarded verbatim after any resolved tests.
	args := removeFirstDashDash(ctx.Args().Slice())

	if opts.Iterate {
		return a.iterate(opts, args)
	}

	if opts.Track {
		if err := a.pruneStale(opts); err != nil {
			return err
		}
	}

	var tests []string
	if opts.HaveRange {
		resolved, err := a.resolveTestSet(opts)
		if err != nil {
			return err
		}
		if len(resolved) == 0 {
			return cli.Exit(fmt.Sprintf("no tests to run for changes in %s", opts.Range), 1)
		}

		durations := a.loadDurations(opts)
		est := estimateRuntime(durations, resolved, opts.Jobs)
		if est.Known > 0 {
			a.logger.Info().
				Int("tests", len(resolved)).
				Int("with_history", est.Known).
				Str("total", formatSeconds(est.Total)).
				Str("estimated", formatSeconds(est.Estimated)).
				Int("jobs", opts.Jobs).
				Msg("Estimated runtime")
		}

		if opts.Order == orderAlternate {
			resolved = alternateFastSlow(resolved, durations)
		}

		tests, err = a.toWorkDirAll(resolved)
		if err != nil {
			return err
		}
	}

	return a.dispatch(opts, tests, args)
}

// removeFirstDashDash drops a leading "--" separator so users can fence
// harness flags off from driver flags.
func removeFirstDashDash(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}
