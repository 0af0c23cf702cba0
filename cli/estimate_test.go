package cli

import "testing"

func TestEstimateRuntime(t *testing.T) {
	tests := []struct {
		name          string
		durations     map[string]float64
		tests         []string
		jobs          int
		wantTotal     float64
		wantEstimated float64
		wantKnown     int
	}{
		{
			name:          "even split across pool",
			durations:     map[string]float64{"a": 10, "b": 10, "c": 10, "d": 10},
			tests:         []string{"a", "b", "c", "d"},
			jobs:          2,
			wantTotal:     40,
			wantEstimated: 20,
			wantKnown:     4,
		},
		{
			name:          "slowest test floors the estimate",
			durations:     map[string]float64{"a": 10, "b": 1, "c": 1},
			tests:         []string{"a", "b", "c"},
			jobs:          4,
			wantTotal:     12,
			wantEstimated: 10,
			wantKnown:     3,
		},
		{
			name:          "no pool size means sequential",
			durations:     map[string]float64{"a": 2, "b": 3},
			tests:         []string{"a", "b"},
			jobs:          0,
			wantTotal:     5,
			wantEstimated: 5,
			wantKnown:     2,
		},
		{
			name:          "missing durations contribute nothing",
			durations:     map[string]float64{"a": 6},
			tests:         []string{"a", "unknown"},
			jobs:          2,
			wantTotal:     6,
			wantEstimated: 6,
			wantKnown:     1,
		},
		{
			name:      "no history at all",
			durations: nil,
			tests:     []string{"a", "b"},
			jobs:      2,
			wantKnown: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateRuntime(tt.durations, tt.tests, tt.jobs)
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if got.Estimated != tt.wantEstimated {
				t.Errorf("Estimated = %v, want %v", got.Estimated, tt.wantEstimated)
			}
			if got.Known != tt.wantKnown {
				t.Errorf("Known = %v, want %v", got.Known, tt.wantKnown)
			}
		})
	}
}
