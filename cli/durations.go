package cli

// This file contains the durations command for inspecting what the
// history store has recorded.

import (
	"fmt"
	"os"
	"sort"

	"github.com/runtests/runtests/history"
	"github.com/runtests/runtests/model"
	"github.com/urfave/cli/v2"
)

func (a *App) durations(ctx *cli.Context) error {
	limit := ctx.Int("limit")
	opts := optionsFromContext(ctx)

	root, err := a.repoRoot()
	if err != nil {
		return err
	}

	path := opts.dbPath(root)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No durations recorded")
		fmt.Printf("Tracked runs record durations to %s\n", path)
		return nil
	}

	store, err := history.Open(path, opts.DBPrefix)
	if err != nil {
		return fmt.Errorf("could not open history store: %w", err)
	}
	defer store.Close()

	var records []model.DurationRecord
	err = store.Durations(func(rec model.DurationRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not read history store: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No durations recorded")
		return nil
	}

	// Slowest first
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Seconds > records[j].Seconds
	})

	var total float64
	for _, rec := range records {
		total += rec.Seconds
	}

	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, rec := range shown {
		fmt.Printf("%9.2fs  %s\n", rec.Seconds, rec.Test)
	}
	if len(shown) < len(records) {
		fmt.Printf("... and %d more\n", len(records)-len(shown))
	}
	fmt.Printf("\nTotal: %.2fs across %d tests\n", total, len(records))

	return nil
}
