package features

import (
	"time"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/stats"
)

// Calendar holds the calendar-derived fields for one observation.
type Calendar struct {
	Timestamp time.Time
	Hour      int // 0-23
	DayOfWeek int // 0 = Monday, 6 = Sunday
	IsWeekend bool
	Month     int // 1-12
	Year      int
	Date      time.Time // timestamp truncated to its day
}

// CalendarFeatures derives calendar fields for every point of the series,
// in order. The input is not mutated.
func CalendarFeatures(series domain.Series) []Calendar {
	out := make([]Calendar, 0, len(series))
	for _, p := range series {
		ts := p.Timestamp
		dow := (int(ts.Weekday()) + 6) % 7
		out = append(out, Calendar{
			Timestamp: ts,
			Hour:      ts.Hour(),
			DayOfWeek: dow,
			IsWeekend: dow >= 5,
			Month:     int(ts.Month()),
			Year:      ts.Year(),
			Date:      time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
		})
	}
	return out
}

// Lag returns a copy of the series with every value shifted lag steps later
// in time: output[i] carries the value of input[i-lag], and the first lag
// positions are Missing. Timestamps are untouched.
func Lag(series domain.Series, lag int) domain.Series {
	out := make(domain.Series, len(series))
	for i, p := range series {
		v := domain.Missing
		if j := i - lag; j >= 0 && j < len(series) {
			v = series[j].Value
		}
		out[i] = domain.TimePoint{Timestamp: p.Timestamp, Value: v}
	}
	return out
}

// Lags builds one lagged copy of the series per offset, keyed by the
// offset.
func Lags(series domain.Series, lags []int) map[int]domain.Series {
	out := make(map[int]domain.Series, len(lags))
	for _, lag := range lags {
		out[lag] = Lag(series, lag)
	}
	return out
}

// RollingMean computes the mean over a trailing window of size window,
// emitting Missing until at least minPeriods non-missing observations are
// inside the window. Missing values inside the window are excluded from the
// mean rather than poisoning it.
func RollingMean(series domain.Series, window, minPeriods int) domain.Series {
	if minPeriods < 1 {
		minPeriods = 1
	}
	out := make(domain.Series, len(series))
	for i, p := range series {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		inWindow := stats.Compact(series[lo : i+1].Values())
		v := domain.Missing
		if len(inWindow) >= minPeriods {
			v = stats.Mean(inWindow)
		}
		out[i] = domain.TimePoint{Timestamp: p.Timestamp, Value: v}
	}
	return out
}

// ExponentialMean smooths the series with the standard exponential
// recurrence at smoothing parameter alpha. See stats.Ewm for the missing
// value treatment.
func ExponentialMean(series domain.Series, alpha float64) domain.Series {
	smoothed := stats.Ewm(series.Values(), alpha)
	out := make(domain.Series, len(series))
	for i, p := range series {
		out[i] = domain.TimePoint{Timestamp: p.Timestamp, Value: smoothed[i]}
	}
	return out
}
