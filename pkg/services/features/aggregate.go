package features

import (
	"sort"
	"time"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/stats"
	"gonum.org/v1/gonum/floats"
)

// AggFunc names a daily roll-up aggregation.
type AggFunc string

const (
	AggSum  AggFunc = "sum"
	AggMean AggFunc = "mean"
	AggMax  AggFunc = "max"
	AggMin  AggFunc = "min"
)

// AggregateDaily rolls an hourly series up to daily granularity, one point
// per calendar day at midnight, aggregated by fn over the day's non-missing
// values. Days whose observations are all missing yield a Missing value.
func AggregateDaily(series domain.Series, fn AggFunc) (domain.Series, error) {
	switch fn {
	case AggSum, AggMean, AggMax, AggMin:
	default:
		return nil, &domain.ConfigError{Option: "aggregation", Value: string(fn)}
	}

	byDay := make(map[int64][]float64)
	days := make([]time.Time, 0)
	for _, p := range series {
		ts := p.Timestamp
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		key := day.UnixNano()
		if _, seen := byDay[key]; !seen {
			days = append(days, day)
		}
		byDay[key] = append(byDay[key], p.Value)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make(domain.Series, 0, len(days))
	for _, day := range days {
		out = append(out, domain.TimePoint{
			Timestamp: day,
			Value:     aggregate(byDay[day.UnixNano()], fn),
		})
	}
	return out, nil
}

func aggregate(values []float64, fn AggFunc) float64 {
	xs := stats.Compact(values)
	if len(xs) == 0 {
		return domain.Missing
	}
	switch fn {
	case AggMean:
		return stats.Mean(xs)
	case AggMax:
		return floats.Max(xs)
	case AggMin:
		return floats.Min(xs)
	default: // AggSum
		return floats.Sum(xs)
	}
}
