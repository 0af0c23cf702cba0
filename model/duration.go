package model

// DurationRecord associates a test with its last recorded wall-clock
// duration.
type DurationRecord struct {
	// Test file path, relative to the repository root
	Test string `json:"test"`
	// Duration of the last recorded run, in seconds
	Seconds float64 `json:"seconds"`
}
