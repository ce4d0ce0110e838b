package quiz

import "time"

// Config holds the engine's scoring and timing rules.
type Config struct {
	// TimeBudget is the time allowed per attempt.
	TimeBudget time.Duration

	// PassThreshold is the minimum percentage (0-100) required to complete a set.
	PassThreshold float64

	// PointsPerQuestion is awarded per correct answer on first completion.
	PointsPerQuestion int
}

// DefaultConfig returns the standard rules: 10 minutes per set, 70% to pass,
// 10 points per correct answer.
func DefaultConfig() Config {
	return Config{
		TimeBudget:        600 * time.Second,
		PassThreshold:     70,
		PointsPerQuestion: 10,
	}
}
