// Package accuracy scores forecasts against actuals and derives the
// safety-stock recommendation from the forecast error distribution.
package accuracy

import (
	"fmt"
	"math"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/stats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPercentile is the service level covered by the safety stock
// recommendation.
const DefaultPercentile = 95.0

// Evaluate computes MAE, RMSE, MAPE and bias over the subset of timestamps
// where both actual and forecast carry a value. Errors are actual minus
// forecast, so a positive bias means net under-forecasting. Entries with
// actual = 0 are excluded from the MAPE average rather than treated as
// infinite. An empty intersection yields all-Missing metrics with
// Samples = 0; the caller must handle that explicitly.
func Evaluate(actual, forecast domain.Series) domain.AccuracyMetrics {
	errors := pairedErrors(actual, forecast)
	if len(errors) == 0 {
		return domain.AccuracyMetrics{
			MAE:  domain.Missing,
			RMSE: domain.Missing,
			MAPE: domain.Missing,
			Bias: domain.Missing,
		}
	}

	abs := make([]float64, len(errors))
	squared := make([]float64, len(errors))
	var pct []float64
	for i, e := range errors {
		abs[i] = math.Abs(e.value)
		squared[i] = e.value * e.value
		if e.actual != 0 {
			pct = append(pct, math.Abs(e.value)/math.Abs(e.actual))
		}
	}

	raw := make([]float64, len(errors))
	for i, e := range errors {
		raw[i] = e.value
	}

	mape := domain.Missing
	if len(pct) > 0 {
		mape = stat.Mean(pct, nil) * 100
	}

	return domain.AccuracyMetrics{
		MAE:     stat.Mean(abs, nil),
		RMSE:    math.Sqrt(stat.Mean(squared, nil)),
		MAPE:    mape,
		Bias:    stat.Mean(raw, nil),
		Samples: len(errors),
	}
}

// SafetyStock returns the percentile-th percentile of the strictly positive
// forecast errors over the non-missing intersection of actual and forecast.
// Only cases where the actual exceeded the forecast pose stockout risk; if
// none exist the recommendation is 0. The result is never negative.
func SafetyStock(actual, forecast domain.Series, percentile float64) (float64, error) {
	if percentile < 0 || percentile > 100 {
		return 0, fmt.Errorf("percentile must be in [0, 100], got %v", percentile)
	}

	var positive []float64
	for _, e := range pairedErrors(actual, forecast) {
		if e.value > 0 {
			positive = append(positive, e.value)
		}
	}
	if len(positive) == 0 {
		return 0, nil
	}

	level := stats.Quantile(positive, percentile)
	if level < 0 {
		level = 0
	}
	return level, nil
}

type pairedError struct {
	actual float64
	value  float64 // actual - forecast
}

// pairedErrors aligns the two series by timestamp and keeps the pairs where
// both values are present.
func pairedErrors(actual, forecast domain.Series) []pairedError {
	byInstant := make(map[int64]float64, len(forecast))
	for _, p := range forecast {
		byInstant[p.Timestamp.UnixNano()] = p.Value
	}

	var out []pairedError
	for _, p := range actual {
		fv, ok := byInstant[p.Timestamp.UnixNano()]
		if !ok || domain.IsMissing(fv) || domain.IsMissing(p.Value) {
			continue
		}
		out = append(out, pairedError{actual: p.Value, value: p.Value - fv})
	}
	return out
}
