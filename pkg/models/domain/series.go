package domain

import (
	"math"
	"sort"
	"time"
)

// Missing is the sentinel for an absent observation value. Components never
// feed it into an aggregate; every consumer states explicitly how missing
// values are treated.
var Missing = math.NaN()

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// TimePoint is a single observation: an instant plus a real value.
// Value may be Missing.
type TimePoint struct {
	Timestamp time.Time
	Value     float64
}

// Series is an ordered sequence of TimePoint. After validation the
// timestamps are strictly increasing with no duplicates. Transformations
// return new Series values and never mutate their input.
type Series []TimePoint

// Sorted returns a copy of the series ordered by timestamp. The receiver is
// left untouched.
func (s Series) Sorted() Series {
	out := make(Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Values returns the value column as a slice, missing entries included.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// At returns the value observed at ts and whether ts is present at all.
func (s Series) At(ts time.Time) (float64, bool) {
	for _, p := range s {
		if p.Timestamp.Equal(ts) {
			return p.Value, true
		}
	}
	return Missing, false
}

// Record is the ingest-facing row shape: a timestamp, a demand value and
// whatever grouping keys the source carried (region, instance type, ...).
type Record struct {
	Timestamp time.Time
	Value     float64
	Groups    map[string]string
}

// Frequency is the fixed delta between consecutive expected observations.
type Frequency string

const (
	FrequencyHourly Frequency = "hourly"
	FrequencyDaily  Frequency = "daily"
)

// Step maps the frequency to its time delta.
func (f Frequency) Step() time.Duration {
	switch f {
	case FrequencyDaily:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// ParseFrequency resolves a frequency name, failing with a ConfigError on
// anything outside the supported set.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyHourly, FrequencyDaily:
		return Frequency(s), nil
	default:
		return "", &ConfigError{Option: "frequency", Value: s}
	}
}
