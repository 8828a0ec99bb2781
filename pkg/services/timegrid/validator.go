package timegrid

import (
	"time"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
)

// Validate inspects a series against the fixed-frequency grid implied by
// freq and reports how complete it is. The input is not mutated and is not
// assumed to be sorted.
//
// Duplicate timestamps count once in the observed set; they are surfaced in
// DuplicateCount instead of silently inflating the completeness ratio.
// An empty series yields the zero report (ExpectedCount 0, Completeness 0).
func Validate(series domain.Series, freq domain.Frequency) domain.ValidationReport {
	if len(series) == 0 {
		return domain.ValidationReport{}
	}

	sorted := series.Sorted()
	start := sorted[0].Timestamp
	end := sorted[len(sorted)-1].Timestamp
	step := freq.Step()

	// Timestamps are compared as instants, not as time.Time struct values.
	observed := make(map[int64]struct{}, len(sorted))
	for _, p := range sorted {
		observed[p.Timestamp.UnixNano()] = struct{}{}
	}
	duplicates := len(sorted) - len(observed)

	expected := gridSize(start, end, step)
	missing := 0
	for ts := start; !ts.After(end); ts = ts.Add(step) {
		if _, ok := observed[ts.UnixNano()]; !ok {
			missing++
		}
	}

	completeness := 0.0
	if expected > 0 {
		completeness = float64(len(observed)) / float64(expected) * 100
	}

	return domain.ValidationReport{
		Start:          start,
		End:            end,
		ObservedCount:  len(observed),
		ExpectedCount:  expected,
		MissingCount:   missing,
		DuplicateCount: duplicates,
		Completeness:   completeness,
	}
}

func gridSize(start, end time.Time, step time.Duration) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/step) + 1
}
