package cli

// This file removes stale records from the history store: entries for
// tests whose files are gone from the working tree.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runtests/runtests/history"
	"github.com/urfave/cli/v2"
)

// pruneStale deletes history records for vanished tests. In tracked mode
// it runs before test selection so stale records cannot skew the runtime
// estimate for the current run.
func (a *App) pruneStale(opts Options) error {
	root, err := a.repoRoot()
	if err != nil {
		return err
	}

	store, err := history.Open(opts.dbPath(root), opts.DBPrefix)
	if err != nil {
		return fmt.Errorf("could not open history store: %w", err)
	}

	removed, pruneErr := store.Prune(
		func(test string) bool {
			_, err := os.Stat(filepath.Join(root, test))
			return err == nil
		},
		func(test string) {
			a.logger.Debug().Str("test", test).Msg("Pruned stale duration record")
		},
	)
	if closeErr := store.Close(); pruneErr == nil {
		pruneErr = closeErr
	}
	if pruneErr != nil {
		return fmt.Errorf("history prune failed: %w", pruneErr)
	}

	if removed > 0 {
		a.logger.Info().Int("records", removed).Msg("Removed stale duration records")
	}
	return nil
}

func (a *App) pruneCommand(ctx *cli.Context) error {
	return a.pruneStale(optionsFromContext(ctx))
}
