// Package forecast produces baseline demand forecasts. Every method takes a
// regular series and returns a forecast aligned to the same timestamp
// domain; positions before the first fully populated window carry Missing.
package forecast

import (
	"fmt"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/stats"
)

const (
	DefaultWindow  = 24
	DefaultHorizon = 1
	DefaultAlpha   = 0.3
	DefaultPeriod  = 24
)

// MovingAverage forecasts each point as the mean of the trailing window of
// size window ending horizon steps earlier, so the value emitted at t never
// depends on the actual at t-horizon+1 or later. At least one non-missing
// observation must be inside the window, otherwise the output is Missing.
func MovingAverage(series domain.Series, window, horizon int) (domain.Series, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be at least 1, got %d", window)
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1, got %d", horizon)
	}

	out := make(domain.Series, len(series))
	for i, p := range series {
		v := domain.Missing
		end := i - horizon // inclusive end of the trailing window
		if end >= 0 {
			lo := end - window + 1
			if lo < 0 {
				lo = 0
			}
			v = stats.Mean(series[lo : end+1].Values())
		}
		out[i] = domain.TimePoint{Timestamp: p.Timestamp, Value: v}
	}
	return out, nil
}

// ExponentiallyWeighted smooths the series with parameter alpha in (0, 1).
// Unlike the other methods this is a smoother, not a shift-delayed
// forecast: the output at t incorporates the actual at t, and callers
// needing a causal forecast must apply their own shift.
func ExponentiallyWeighted(series domain.Series, alpha float64) (domain.Series, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0, 1), got %v", alpha)
	}

	smoothed := stats.Ewm(series.Values(), alpha)
	out := make(domain.Series, len(series))
	for i, p := range series {
		out[i] = domain.TimePoint{Timestamp: p.Timestamp, Value: smoothed[i]}
	}
	return out, nil
}

// SeasonalNaive forecasts each point as the actual observed exactly one
// seasonal period earlier. The first period positions are Missing.
func SeasonalNaive(series domain.Series, period int) (domain.Series, error) {
	if period < 1 {
		return nil, fmt.Errorf("seasonal period must be at least 1, got %d", period)
	}

	out := make(domain.Series, len(series))
	for i, p := range series {
		v := domain.Missing
		if j := i - period; j >= 0 {
			v = series[j].Value
		}
		out[i] = domain.TimePoint{Timestamp: p.Timestamp, Value: v}
	}
	return out, nil
}
