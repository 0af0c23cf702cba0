package cli

// This file drives per-commit testing: an interactive rebase over the
// requested range that re-invokes this driver, in direct mode, after each
// replayed commit.

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/runtests/runtests/cli/harness"
	"github.com/runtests/runtests/model"
	"github.com/urfave/cli/v2"
)

func (a *App) iterate(opts Options, args []string) error {
	stashed, err := a.stashAll()
	if err != nil {
		return err
	}
	if stashed {
		if err := a.confirmStash(); err != nil {
			return err
		}
	}

	self, err := a.selfPath()
	if err != nil {
		return fmt.Errorf("cannot determine own executable path: %w", err)
	}
	hook := harness.HookCommand(self, args)

	if count, err := a.commitCount(opts.Range); err == nil {
		a.logger.Info().
			Int("commits", count).
			Str("range", opts.Range.String()).
			Msg("Testing each commit")
	}
	a.logger.Debug().Str("exec", hook).Msg("Per-commit command")

	// GIT_SEQUENCE_EDITOR=true accepts the generated todo list as-is, so
	// the rebase never pauses for editing.
	err = a.runAttached(
		[]string{"GIT_SEQUENCE_EDITOR=true"},
		"git", "rebase", "--interactive", "--exec", hook, opts.Range.String(),
	)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The rebase stopped at the failing commit; continuing or
			// aborting it is the user's call.
			return cli.Exit("per-commit tests failed; fix and `git rebase --continue`, or `git rebase --abort`", exitErr.ExitCode())
		}
		return fmt.Errorf("history rewrite failed: %w", err)
	}

	a.logger.Info().Msg("All commits tested")
	return nil
}

func (a *App) commitCount(r model.RevRange) (int, error) {
	out, err := a.gitOut("rev-list", "--count", r.ForRevList())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(out)
}

// confirmStash warns that stashed work is not covered by the upcoming
// per-commit runs and blocks for a single acknowledgment line on stdin.
// The only blocking read in the driver.
func (a *App) confirmStash() error {
	fmt.Fprintln(os.Stderr, "Uncommitted changes were stashed and will NOT be covered by the per-commit runs.")
	fmt.Fprintln(os.Stderr, "Afterwards, restore and test them with: git stash pop && runtests --track --git HEAD")
	fmt.Fprint(os.Stderr, "Press enter to start the rebase: ")
	if _, err := bufio.NewReader(a.stdin).ReadString('\n'); err != nil {
		return fmt.Errorf("aborted while waiting for acknowledgment: %w", err)
	}
	return nil
}
