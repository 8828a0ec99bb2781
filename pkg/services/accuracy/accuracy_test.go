package accuracy

import (
	"testing"
	"time"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlySeries(start time.Time, values ...float64) domain.Series {
	s := make(domain.Series, 0, len(values))
	for i, v := range values {
		s = append(s, domain.TimePoint{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Value:     v,
		})
	}
	return s
}

func TestEvaluate_PerfectForecast(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 10, 20, 30)

	m := Evaluate(actual, actual)

	assert.Equal(t, 0.0, m.MAE)
	assert.Equal(t, 0.0, m.RMSE)
	assert.Equal(t, 0.0, m.MAPE)
	assert.Equal(t, 0.0, m.Bias)
	assert.Equal(t, 3, m.Samples)
}

func TestEvaluate_KnownErrors(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 10, 20)
	forecast := hourlySeries(start, 8, 24)

	m := Evaluate(actual, forecast)

	// errors: +2, -4
	assert.Equal(t, 3.0, m.MAE)
	assert.InDelta(t, 3.1622776601, m.RMSE, 1e-9)
	assert.InDelta(t, (0.2+0.2)/2*100, m.MAPE, 1e-9)
	assert.Equal(t, -1.0, m.Bias)
	assert.Equal(t, 2, m.Samples)
}

func TestEvaluate_MissingPairsExcluded(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 10, domain.Missing, 30)
	forecast := hourlySeries(start, domain.Missing, 20, 28)

	m := Evaluate(actual, forecast)

	assert.Equal(t, 1, m.Samples)
	assert.Equal(t, 2.0, m.MAE)
}

func TestEvaluate_ZeroActualExcludedFromMAPE(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 0, 10)
	forecast := hourlySeries(start, 1, 8)

	m := Evaluate(actual, forecast)

	assert.Equal(t, 2, m.Samples)
	assert.InDelta(t, 20.0, m.MAPE, 1e-9)
}

func TestEvaluate_EmptyIntersection(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 10, 20)
	forecast := hourlySeries(start.Add(48*time.Hour), 10, 20)

	m := Evaluate(actual, forecast)

	assert.Equal(t, 0, m.Samples)
	assert.True(t, domain.IsMissing(m.MAE))
	assert.True(t, domain.IsMissing(m.RMSE))
	assert.True(t, domain.IsMissing(m.MAPE))
	assert.True(t, domain.IsMissing(m.Bias))
}

func TestSafetyStock_NoUnderForecast(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 10, 20, 30)
	forecast := hourlySeries(start, 10, 25, 35)

	level, err := SafetyStock(actual, forecast, DefaultPercentile)
	require.NoError(t, err)

	assert.Equal(t, 0.0, level)
}

func TestSafetyStock_PositiveErrorsOnly(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 15, 10, 30, 22)
	forecast := hourlySeries(start, 10, 20, 20, 20)

	// positive errors: 5, 10, 2; median = 5
	level, err := SafetyStock(actual, forecast, 50)
	require.NoError(t, err)

	assert.Equal(t, 5.0, level)
}

func TestSafetyStock_HighPercentile(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actual := hourlySeries(start, 11, 12, 13, 14)
	forecast := hourlySeries(start, 10, 10, 10, 10)

	// positive errors 1..4; p100 is the maximum
	level, err := SafetyStock(actual, forecast, 100)
	require.NoError(t, err)

	assert.Equal(t, 4.0, level)
}

func TestSafetyStock_EmptyIntersection(t *testing.T) {
	level, err := SafetyStock(domain.Series{}, domain.Series{}, DefaultPercentile)
	require.NoError(t, err)

	assert.Equal(t, 0.0, level)
}

func TestSafetyStock_PercentileOutOfRange(t *testing.T) {
	_, err := SafetyStock(domain.Series{}, domain.Series{}, 120)
	assert.Error(t, err)
}
