package cli

// This file holds the optional ordering policy applied to a resolved test
// set before dispatch. Off unless selected with --order.

import "sort"

const (
	orderNone      = "none"
	orderAlternate = "alternate"
)

// alternateFastSlow interleaves the fastest and slowest remaining tests so
// long-running tests spread across the worker pool instead of clustering
// at the tail of the run. Tests without history sort as zero-duration.
func alternateFastSlow(tests []string, durations map[string]float64) []string {
	sorted := append([]string(nil), tests...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return durations[sorted[i]] < durations[sorted[j]]
	})

	out := make([]string, 0, len(sorted))
	for i, j := 0, len(sorted)-1; i <= j; i, j = i+1, j-1 {
		out = append(out, sorted[i])
		if i < j {
			out = append(out, sorted[j])
		}
	}
	return out
}
