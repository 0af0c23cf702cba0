package cli

// This file resolves the set of tests to run from a version-control
// revision range, via an external change-impact tool.

import (
	"fmt"
	"strings"

	"github.com/runtests/runtests/model"
)

// defaultImpactCommand is the external change-impact tool: given a
// revision range it prints one affected test path per line, relative to
// the repository root.
const defaultImpactCommand = "git-affected-tests"

// ImpactResolver maps a revision range to the tests affected by the
// changes in it. The change-detection algorithm lives outside this driver.
type ImpactResolver interface {
	AffectedTests(r model.RevRange) ([]string, error)
}

type commandImpact struct {
	command string
	runner  func(name string, args ...string) ([]byte, error)
}

func (c *commandImpact) AffectedTests(r model.RevRange) ([]string, error) {
	out, err := c.runner(c.command, r.ForDiff())
	if err != nil {
		return nil, fmt.Errorf("change-impact lookup with %s failed: %w", c.command, err)
	}

	var tests []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tests = append(tests, line)
		}
	}
	return tests, nil
}

// resolveTestSet asks the change-impact tool which tests the range touches
// and de-duplicates the answer, keeping the tool's order. Explicit path
// arguments are NOT merged in here: user intent is additive and appended
// after the resolved set at dispatch time.
func (a *App) resolveTestSet(opts Options) ([]string, error) {
	impact := a.impact
	if impact == nil {
		impact = &commandImpact{command: opts.ImpactCmd, runner: a.cmdOut}
	}

	tests, err := impact.AffectedTests(opts.Range)
	if err != nil {
		return nil, err
	}
	return dedupe(tests), nil
}

// dedupe keeps the first occurrence of each test, preserving order.
func dedupe(tests []string) []string {
	seen := make(map[string]struct{}, len(tests))
	out := make([]string, 0, len(tests))
	for _, test := range tests {
		if _, ok := seen[test]; ok {
			continue
		}
		seen[test] = struct{}{}
		out = append(out, test)
	}
	return out
}
