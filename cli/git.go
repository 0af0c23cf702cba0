package cli

// This file contains Git integration utilities: repository discovery,
// stash handling, and conversion between the two spellings of a test
// path (repository-root relative and working-directory relative).

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (a *App) gitOut(args ...string) (string, error) {
	out, err := a.cmdOut("git", args...)
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (a *App) repoRoot() (string, error) {
	root, err := a.gitOut("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return root, nil
}

func (a *App) stashCount() (int, error) {
	out, err := a.gitOut("stash", "list")
	if err != nil {
		return 0, err
	}
	if out == "" {
		return 0, nil
	}
	return len(strings.Split(out, "\n")), nil
}

// stashAll stashes tracked and untracked changes and reports whether a
// new stash entry was actually created. Stashing a clean tree is legal
// but creates nothing, so the outcome is read off the stash-list size.
func (a *App) stashAll() (bool, error) {
	before, err := a.stashCount()
	if err != nil {
		return false, err
	}
	if _, err := a.cmdOut("git", "stash", "push", "--include-untracked", "--quiet"); err != nil {
		return false, fmt.Errorf("git stash push: %w", err)
	}
	after, err := a.stashCount()
	if err != nil {
		return false, err
	}
	return after > before, nil
}

// toWorkDir rewrites a repository-root relative test path into one
// relative to the working directory. Inverse of toRepoRoot.
func toWorkDir(repoRoot, workDir, test string) (string, error) {
	rel, err := filepath.Rel(workDir, filepath.Join(repoRoot, test))
	if err != nil {
		return "", fmt.Errorf("cannot express %s relative to %s: %w", test, workDir, err)
	}
	return rel, nil
}

// toRepoRoot rewrites a working-directory relative test path into one
// relative to the repository root, the form git and the history store use.
func toRepoRoot(repoRoot, workDir, test string) (string, error) {
	rel, err := filepath.Rel(repoRoot, filepath.Join(workDir, test))
	if err != nil {
		return "", fmt.Errorf("cannot express %s relative to %s: %w", test, repoRoot, err)
	}
	return rel, nil
}

func (a *App) toWorkDirAll(tests []string) ([]string, error) {
	root, err := a.repoRoot()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(tests))
	for _, test := range tests {
		rel, err := toWorkDir(root, cwd, test)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}
