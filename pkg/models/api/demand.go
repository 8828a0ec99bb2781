package api

import "time"

// TimePoint is one observation or forecast value on the wire. Value is
// null where the point is missing.
type TimePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     *float64  `json:"value"`
}

// ValidationReport mirrors the domain validation report for JSON clients.
type ValidationReport struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	ObservedCount  int       `json:"observed_count"`
	ExpectedCount  int       `json:"expected_count"`
	MissingCount   int       `json:"missing_count"`
	DuplicateCount int       `json:"duplicate_count"`
	Completeness   float64   `json:"completeness"`
}

// AccuracyMetrics carries forecast scores; metrics are null when the
// aligned sample set is empty.
type AccuracyMetrics struct {
	MAE     *float64 `json:"mae"`
	RMSE    *float64 `json:"rmse"`
	MAPE    *float64 `json:"mape"`
	Bias    *float64 `json:"bias"`
	Samples int      `json:"n_samples"`
}

// ForecastResponse bundles a forecast with its scores.
type ForecastResponse struct {
	Method   string          `json:"method"`
	Forecast []TimePoint     `json:"forecast"`
	Metrics  AccuracyMetrics `json:"metrics"`
}

// SafetyStockResponse is the service-level buffer recommendation.
type SafetyStockResponse struct {
	Percentile  float64 `json:"percentile"`
	SafetyStock float64 `json:"safety_stock"`
}
