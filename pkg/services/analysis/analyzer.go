// Package analysis wires the demand pipeline end to end: grid validation,
// gap filling, forecasting, scoring and the safety-stock recommendation.
package analysis

import (
	"context"
	"fmt"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/accuracy"
	"github.com/de-tools/demand-atlas/pkg/services/features"
	"github.com/de-tools/demand-atlas/pkg/services/forecast"
	"github.com/de-tools/demand-atlas/pkg/services/timegrid"
	"github.com/rs/zerolog"
)

// Method names a forecasting method.
type Method string

const (
	MethodMovingAverage Method = "moving_average"
	MethodExponential   Method = "exponential"
	MethodSeasonalNaive Method = "seasonal_naive"
)

// ParseMethod resolves a method name, failing with a ConfigError on
// anything outside the supported set.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodMovingAverage, MethodExponential, MethodSeasonalNaive:
		return Method(s), nil
	default:
		return "", &domain.ConfigError{Option: "forecast method", Value: s}
	}
}

// Params configures one analysis run. Zero values fall back to the
// documented defaults.
type Params struct {
	Frequency      domain.Frequency
	FillPolicy     timegrid.FillPolicy
	Method         Method
	Window         int
	Horizon        int
	Alpha          float64
	SeasonalPeriod int
	Percentile     float64
}

// DefaultParams returns the defaults used by the CLI and the web API:
// hourly data, forward fill, a one-day moving average one step ahead and a
// 95th percentile safety stock.
func DefaultParams() Params {
	return Params{
		Frequency:      domain.FrequencyHourly,
		FillPolicy:     timegrid.FillForward,
		Method:         MethodMovingAverage,
		Window:         forecast.DefaultWindow,
		Horizon:        forecast.DefaultHorizon,
		Alpha:          forecast.DefaultAlpha,
		SeasonalPeriod: forecast.DefaultPeriod,
		Percentile:     accuracy.DefaultPercentile,
	}
}

func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.Frequency == "" {
		p.Frequency = def.Frequency
	}
	if p.FillPolicy == "" {
		p.FillPolicy = def.FillPolicy
	}
	if p.Method == "" {
		p.Method = def.Method
	}
	if p.Window == 0 {
		p.Window = def.Window
	}
	if p.Horizon == 0 {
		p.Horizon = def.Horizon
	}
	if p.Alpha == 0 {
		p.Alpha = def.Alpha
	}
	if p.SeasonalPeriod == 0 {
		p.SeasonalPeriod = def.SeasonalPeriod
	}
	if p.Percentile == 0 {
		p.Percentile = def.Percentile
	}
	return p
}

// Result carries everything one run produced. Filled is the gap-free
// series the forecast was computed from. OutlierCount is an IQR screen
// over the raw observations, reported but never acted on.
type Result struct {
	Params       Params
	Validation   domain.ValidationReport
	Filled       domain.Series
	Forecast     domain.Series
	Metrics      domain.AccuracyMetrics
	SafetyStock  float64
	OutlierCount int
}

// Run executes the pipeline over series. Config errors (unknown method,
// fill policy or frequency) surface immediately; empty or degenerate
// inputs produce sentinel results instead of failing, so batch report
// generation is never interrupted.
func Run(ctx context.Context, series domain.Series, params Params) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	params = params.withDefaults()

	if _, err := ParseMethod(string(params.Method)); err != nil {
		return nil, err
	}
	if _, err := domain.ParseFrequency(string(params.Frequency)); err != nil {
		return nil, err
	}

	validation := timegrid.Validate(series, params.Frequency)
	if validation.MissingCount > 0 {
		logger.Warn().
			Int("missing", validation.MissingCount).
			Float64("completeness", validation.Completeness).
			Msg("series has gaps; filling before forecasting")
	}

	outliers := 0
	for _, flagged := range features.Outliers(series.Values(), features.DefaultIQRMultiplier) {
		if flagged {
			outliers++
		}
	}
	if outliers > 0 {
		logger.Debug().Int("outliers", outliers).Msg("IQR screen flagged observations")
	}

	filled, err := timegrid.Fill(series, params.Frequency, params.FillPolicy)
	if err != nil {
		return nil, err
	}

	fc, err := runForecast(filled, params)
	if err != nil {
		return nil, fmt.Errorf("%s forecast failed: %w", params.Method, err)
	}

	metrics := accuracy.Evaluate(filled, fc)
	stock, err := accuracy.SafetyStock(filled, fc, params.Percentile)
	if err != nil {
		return nil, err
	}

	return &Result{
		Params:       params,
		Validation:   validation,
		Filled:       filled,
		Forecast:     fc,
		Metrics:      metrics,
		SafetyStock:  stock,
		OutlierCount: outliers,
	}, nil
}

func runForecast(series domain.Series, params Params) (domain.Series, error) {
	switch params.Method {
	case MethodExponential:
		return forecast.ExponentiallyWeighted(series, params.Alpha)
	case MethodSeasonalNaive:
		return forecast.SeasonalNaive(series, params.SeasonalPeriod)
	default:
		return forecast.MovingAverage(series, params.Window, params.Horizon)
	}
}
