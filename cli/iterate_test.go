package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// gitForIterate scripts the git calls the iterative driver makes: two
// stash-list reads around the push, and a commit count for the range.
func gitForIterate(stashAfterPush string) func(args ...string) (string, error) {
	listCalls := 0
	return func(args ...string) (string, error) {
		switch {
		case len(args) == 2 && args[0] == "stash" && args[1] == "list":
			listCalls++
			if listCalls == 1 {
				return "", nil
			}
			return stashAfterPush, nil
		case args[0] == "stash" && args[1] == "push":
			return "", nil
		case args[0] == "rev-list" && args[1] == "--count":
			return "3", nil
		}
		return "", fmt.Errorf("unexpected git invocation: %v", args)
	}
}

func TestIterateStashesAndDrivesRebase(t *testing.T) {
	d := newTestDriver(gitForIterate("stash@{0}: WIP on feature"))
	d.app.stdin = strings.NewReader("\n")

	err := d.app.Run([]string{"runtests", "--iterate", "--git", "main..", "t/x.t", "-v"})
	require.NoError(t, err)

	require.True(t, d.attachedCalled)
	require.Equal(t, []string{
		"git", "rebase", "--interactive",
		"--exec", "/usr/local/bin/runtests --git HEAD^..HEAD t/x.t -v",
		"main..",
	}, d.attachedCmd)
	require.Contains(t, d.attachedEnv, "GIT_SEQUENCE_EDITOR=true")

	var stashed bool
	for _, call := range d.calls {
		if len(call) > 2 && call[1] == "stash" && call[2] == "push" {
			stashed = true
			require.Contains(t, call, "--include-untracked")
			require.Contains(t, call, "--quiet")
		}
	}
	require.True(t, stashed)
}

func TestIterateCleanTreeSkipsPrompt(t *testing.T) {
	// Stash list stays empty, so no entry was created and nothing should
	// block on stdin: a read would hit EOF and fail the run.
	d := newTestDriver(gitForIterate(""))
	d.app.stdin = strings.NewReader("")

	err := d.app.Run([]string{"runtests", "--iterate", "--git", "main.."})
	require.NoError(t, err)
	require.True(t, d.attachedCalled)
}

func TestIterateAbortsWhenAcknowledgmentFails(t *testing.T) {
	d := newTestDriver(gitForIterate("stash@{0}: WIP on feature"))
	d.app.stdin = strings.NewReader("") // EOF before any acknowledgment

	err := d.app.Run([]string{"runtests", "--iterate", "--git", "main.."})
	require.Error(t, err)
	require.Contains(t, err.Error(), "acknowledgment")
	require.False(t, d.attachedCalled, "no rewrite without acknowledgment")
}

func TestIterateRewriteFailure(t *testing.T) {
	d := newTestDriver(gitForIterate(""))
	d.attachedErr = fmt.Errorf("git not installed")

	err := d.app.Run([]string{"runtests", "--iterate", "--git", "main.."})
	require.Error(t, err)
	require.Contains(t, err.Error(), "history rewrite failed")
}
