package stats

import (
	"sort"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

// Quantile returns the p-th percentile (0 <= p <= 100) of the non-missing
// entries of values, using linear interpolation between order statistics:
// for n sorted values the percentile sits at rank h = (n-1) * p/100 and is
// interpolated between the surrounding observations. Returns Missing when
// no usable entries remain.
//
// gonum's stat.Quantile implements the empirical and Harrell-Davis
// definitions but not this interpolation rule, so we compute the rank
// arithmetic here and keep every percentile in the codebase on one
// definition.
func Quantile(values []float64, p float64) float64 {
	xs := Compact(values)
	if len(xs) == 0 {
		return domain.Missing
	}
	sort.Float64s(xs)
	if p <= 0 {
		return xs[0]
	}
	if p >= 100 {
		return xs[len(xs)-1]
	}
	h := float64(len(xs)-1) * p / 100
	lo := int(h)
	frac := h - float64(lo)
	if lo+1 >= len(xs) {
		return xs[lo]
	}
	return xs[lo] + frac*(xs[lo+1]-xs[lo])
}

// Mean averages the non-missing entries of values. Returns Missing when
// none remain.
func Mean(values []float64) float64 {
	xs := Compact(values)
	if len(xs) == 0 {
		return domain.Missing
	}
	return stat.Mean(xs, nil)
}

// Compact returns the non-missing entries of values in order.
func Compact(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !domain.IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Ewm applies the standard exponential smoothing recurrence
// s[t] = alpha*x[t] + (1-alpha)*s[t-1] over values. The first non-missing
// entry seeds the state; positions before it are Missing. A missing input
// does not update the state and the output at that position is the state
// carried from the previous step.
func Ewm(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	state := domain.Missing
	for i, v := range values {
		if domain.IsMissing(v) {
			out[i] = state
			continue
		}
		if domain.IsMissing(state) {
			state = v
		} else {
			state = alpha*v + (1-alpha)*state
		}
		out[i] = state
	}
	return out
}
