package matching

// Options tunes the matching engine. The zero value is not useful; start
// from DefaultOptions and override individual fields.
type Options struct {
	// DateToleranceDays is how many whole days an activity may land from the
	// planned date and still earn a (reduced) date bonus.
	DateToleranceDays int `json:"date_tolerance_days" yaml:"date_tolerance_days"`

	// DistanceTolerance is the relative error under which planned and actual
	// distance are considered equal (0.15 = within 15%).
	DistanceTolerance float64 `json:"distance_tolerance" yaml:"distance_tolerance"`

	// DurationTolerance is the relative error under which planned and actual
	// duration are considered equal.
	DurationTolerance float64 `json:"duration_tolerance" yaml:"duration_tolerance"`

	// MinConfidence is the floor below which a scored pair is not reported
	// as a match at all.
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`
}

// DefaultOptions returns the tolerances used when the caller supplies none.
func DefaultOptions() Options {
	return Options{
		DateToleranceDays: 1,
		DistanceTolerance: 0.15,
		DurationTolerance: 0.20,
		MinConfidence:     0.30,
	}
}
