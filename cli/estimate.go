package cli

// This file computes the advisory runtime estimate for a resolved test
// set against the recorded duration history.

import (
	"fmt"
	"os"

	"github.com/runtests/runtests/history"
	"github.com/runtests/runtests/model"
)

// runtimeEstimate is advisory only: it is printed for the user and never
// blocks or alters execution.
type runtimeEstimate struct {
	Total     float64 // summed seconds across tests with history
	Estimated float64 // parallel completion floor in seconds
	Known     int     // tests that had a recorded duration
}

// estimateRuntime sums recorded durations for the given tests and, when a
// worker-pool size is known, floors the parallel estimate at the single
// slowest test, since no amount of parallelism shrinks one test's own
// runtime. Tests without history contribute nothing to the aggregate.
func estimateRuntime(durations map[string]float64, tests []string, jobs int) runtimeEstimate {
	var est runtimeEstimate
	var slowest float64

	for _, test := range tests {
		seconds, ok := durations[test]
		if !ok {
			continue
		}
		est.Known++
		est.Total += seconds
		if seconds > slowest {
			slowest = seconds
		}
	}

	est.Estimated = est.Total
	if jobs > 0 {
		est.Estimated = est.Total / float64(jobs)
		if slowest > est.Estimated {
			est.Estimated = slowest
		}
	}
	return est
}

// loadDurations reads every duration record into a map keyed by
// repo-relative test path. A missing or unreadable store is not an error
// here: the estimate is best-effort.
func (a *App) loadDurations(opts Options) map[string]float64 {
	root, err := a.repoRoot()
	if err != nil {
		a.logger.Debug().Err(err).Msg("No duration history available")
		return nil
	}

	path := opts.dbPath(root)
	if _, err := os.Stat(path); err != nil {
		a.logger.Debug().Str("path", path).Msg("No duration history recorded yet")
		return nil
	}

	store, err := history.Open(path, opts.DBPrefix)
	if err != nil {
		a.logger.Debug().Err(err).Msg("Could not open duration history")
		return nil
	}
	defer store.Close()

	durations := make(map[string]float64)
	err = store.Durations(func(rec model.DurationRecord) error {
		durations[rec.Test] = rec.Seconds
		return nil
	})
	if err != nil {
		a.logger.Debug().Err(err).Msg("Could not read duration history")
		return nil
	}
	return durations
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
