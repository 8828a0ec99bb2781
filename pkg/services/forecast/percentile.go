package forecast

import (
	"fmt"
	"strings"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/stats"
)

// GroupForecast is a static lookup table from composite group key to
// forecast value. It is joined back onto a record set by group key
// equality, not aligned by time.
type GroupForecast map[string]float64

// GroupKey builds the composite key for a record over the given grouping
// columns, failing with a SchemaError when a column is absent.
func GroupKey(r domain.Record, keys []string) (string, error) {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := r.Groups[k]
		if !ok {
			return "", &domain.SchemaError{Field: k}
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, "|"), nil
}

// PercentileByGroup computes, per group, the percentile-th percentile of
// the historical values in that group. Records with a missing value are
// excluded, so groups with no usable observations are absent from the
// table rather than reported as zero. Group aggregation is order
// independent: shuffling the input records yields an identical table.
func PercentileByGroup(records []domain.Record, keys []string, percentile float64) (GroupForecast, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one grouping key is required")
	}
	if percentile < 0 || percentile > 100 {
		return nil, fmt.Errorf("percentile must be in [0, 100], got %v", percentile)
	}

	grouped := make(map[string][]float64)
	for _, r := range records {
		if domain.IsMissing(r.Value) {
			continue
		}
		key, err := GroupKey(r, keys)
		if err != nil {
			return nil, err
		}
		grouped[key] = append(grouped[key], r.Value)
	}

	out := make(GroupForecast, len(grouped))
	for key, values := range grouped {
		out[key] = stats.Quantile(values, percentile)
	}
	return out, nil
}

// Join maps each record to its group's forecast value, Missing when the
// record's group has no entry in the table.
func (g GroupForecast) Join(records []domain.Record, keys []string) ([]float64, error) {
	out := make([]float64, len(records))
	for i, r := range records {
		key, err := GroupKey(r, keys)
		if err != nil {
			return nil, err
		}
		v, ok := g[key]
		if !ok {
			v = domain.Missing
		}
		out[i] = v
	}
	return out, nil
}
