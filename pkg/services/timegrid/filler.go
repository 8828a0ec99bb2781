package timegrid

import (
	"github.com/de-tools/demand-atlas/pkg/models/domain"
)

// FillPolicy selects how a gap's value is synthesized.
type FillPolicy string

const (
	FillForward     FillPolicy = "forward"
	FillBackward    FillPolicy = "backward"
	FillInterpolate FillPolicy = "interpolate"
)

// ParseFillPolicy resolves a policy name, failing with a ConfigError on
// anything outside the supported set.
func ParseFillPolicy(s string) (FillPolicy, error) {
	switch FillPolicy(s) {
	case FillForward, FillBackward, FillInterpolate:
		return FillPolicy(s), nil
	default:
		return "", &domain.ConfigError{Option: "fill policy", Value: s}
	}
}

// Fill reindexes series onto the complete fixed-frequency grid spanning
// [min, max] at freq's step and synthesizes values for the slots that have
// no observation:
//
//   - forward: last observed value at or before the slot; Missing when no
//     prior observation exists
//   - backward: next observed value at or after the slot; Missing when no
//     later observation exists
//   - interpolate: linear interpolation in time between the nearest earlier
//     and later observations; slots with a neighbor on only one side fall
//     back to that neighbor's value
//
// Observation values that are already Missing are filled by the same rule.
// Only values are ever synthesized; every timestamp in the output lies on
// the grid. Duplicate input timestamps keep their first observation.
// Applying Fill to an already gap-free series returns an equal series.
func Fill(series domain.Series, freq domain.Frequency, policy FillPolicy) (domain.Series, error) {
	if _, err := ParseFillPolicy(string(policy)); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return domain.Series{}, nil
	}

	sorted := series.Sorted()
	start := sorted[0].Timestamp
	end := sorted[len(sorted)-1].Timestamp
	step := freq.Step()

	byInstant := make(map[int64]float64, len(sorted))
	for _, p := range sorted {
		if _, ok := byInstant[p.Timestamp.UnixNano()]; !ok {
			byInstant[p.Timestamp.UnixNano()] = p.Value
		}
	}

	out := make(domain.Series, 0, gridSize(start, end, step))
	for ts := start; !ts.After(end); ts = ts.Add(step) {
		v, ok := byInstant[ts.UnixNano()]
		if !ok {
			v = domain.Missing
		}
		out = append(out, domain.TimePoint{Timestamp: ts, Value: v})
	}

	switch policy {
	case FillForward:
		forwardFill(out)
	case FillBackward:
		backwardFill(out)
	case FillInterpolate:
		interpolate(out)
	}
	return out, nil
}

func forwardFill(s domain.Series) {
	last := domain.Missing
	for i := range s {
		if domain.IsMissing(s[i].Value) {
			s[i].Value = last
		} else {
			last = s[i].Value
		}
	}
}

func backwardFill(s domain.Series) {
	next := domain.Missing
	for i := len(s) - 1; i >= 0; i-- {
		if domain.IsMissing(s[i].Value) {
			s[i].Value = next
		} else {
			next = s[i].Value
		}
	}
}

// interpolate fills each run of missing slots linearly in time between its
// surrounding observations. Runs at the boundaries have a neighbor on one
// side only and take that neighbor's value.
func interpolate(s domain.Series) {
	prev := -1
	for i := 0; i < len(s); i++ {
		if !domain.IsMissing(s[i].Value) {
			prev = i
			continue
		}

		next := -1
		for j := i + 1; j < len(s); j++ {
			if !domain.IsMissing(s[j].Value) {
				next = j
				break
			}
		}

		switch {
		case prev >= 0 && next >= 0:
			span := s[next].Timestamp.Sub(s[prev].Timestamp).Seconds()
			offset := s[i].Timestamp.Sub(s[prev].Timestamp).Seconds()
			s[i].Value = s[prev].Value + (s[next].Value-s[prev].Value)*offset/span
		case prev >= 0:
			s[i].Value = s[prev].Value
		case next >= 0:
			s[i].Value = s[next].Value
		}
	}
}
