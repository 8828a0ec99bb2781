package features

import (
	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/stats"
)

// DefaultIQRMultiplier is the standard Tukey fence width; 3.0 is the usual
// conservative alternative.
const DefaultIQRMultiplier = 1.5

// Outliers flags values lying outside [Q1 - k*IQR, Q3 + k*IQR], with Q1/Q3
// the 25th/75th percentiles over the non-missing values. Missing values are
// never flagged. On a constant series the fences collapse to the constant
// and nothing is flagged.
func Outliers(values []float64, multiplier float64) []bool {
	q1 := stats.Quantile(values, 25)
	q3 := stats.Quantile(values, 75)

	mask := make([]bool, len(values))
	if domain.IsMissing(q1) || domain.IsMissing(q3) {
		return mask
	}

	iqr := q3 - q1
	lower := q1 - multiplier*iqr
	upper := q3 + multiplier*iqr
	for i, v := range values {
		if domain.IsMissing(v) {
			continue
		}
		mask[i] = v < lower || v > upper
	}
	return mask
}
