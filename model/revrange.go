package model

import "strings"

// DefaultRange selects everything not yet merged into the upstream branch.
const DefaultRange = RevRange("@{upstream}")

// RevRange is a git revision or `since..until` range, passed through to git
// uninterpreted.
type RevRange string

// ForDiff returns the form accepted by diff-style operations, which compare
// a bare revision against the working tree.
func (r RevRange) ForDiff() string {
	return string(r)
}

// ForRevList returns the form accepted by commit-listing operations. Those
// treat a bare revision as a single commit, so an unranged value needs ".."
// appended to mean "every commit since".
func (r RevRange) ForRevList() string {
	if strings.Contains(string(r), "..") {
		return string(r)
	}
	return string(r) + ".."
}

func (r RevRange) String() string {
	return string(r)
}
