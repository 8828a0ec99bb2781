package analysis

import (
	"fmt"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
)

// Report shapes a Result into the renderable report structure.
func (r *Result) Report(title string) *domain.Report {
	v := r.Validation
	duration := 0
	if !v.End.IsZero() {
		duration = int(v.End.Sub(v.Start).Hours()/24) + 1
	}

	validation := domain.ReportSection{
		Title: "Time Grid Validation",
		Details: []domain.ReportDetail{
			{Name: "Observed", Value: v.ObservedCount, Unit: "records", Description: "unique timestamps present"},
			{Name: "Expected", Value: v.ExpectedCount, Unit: "records", Description: fmt.Sprintf("%s grid from start to end", r.Params.Frequency)},
			{Name: "Missing", Value: v.MissingCount, Unit: "records", Description: "gaps filled with " + string(r.Params.FillPolicy)},
			{Name: "Duplicates", Value: v.DuplicateCount, Unit: "records", Description: "timestamps observed more than once"},
			{Name: "Outliers", Value: r.OutlierCount, Unit: "records", Description: "flagged by the IQR screen"},
			{Name: "Completeness", Value: fmt.Sprintf("%.2f", v.Completeness), Unit: "%", Description: ""},
		},
	}

	m := r.Metrics
	scoring := domain.ReportSection{
		Title: fmt.Sprintf("Forecast Accuracy (%s)", r.Params.Method),
		Details: []domain.ReportDetail{
			{Name: "MAE", Value: metricValue(m.MAE), Description: "mean absolute error"},
			{Name: "RMSE", Value: metricValue(m.RMSE), Description: "root mean squared error"},
			{Name: "MAPE", Value: metricValue(m.MAPE), Unit: "%", Description: "zero actuals excluded"},
			{Name: "Bias", Value: metricValue(m.Bias), Description: "positive means under-forecasting"},
			{Name: "Samples", Value: m.Samples, Description: "pairwise-complete points"},
		},
	}

	stock := domain.ReportSection{
		Title: "Safety Stock",
		Details: []domain.ReportDetail{
			{
				Name:  "Recommended buffer",
				Value: fmt.Sprintf("%.2f", r.SafetyStock),
				Description: fmt.Sprintf(
					"covers %.0f%% of historical under-forecast events", r.Params.Percentile),
			},
		},
	}

	return &domain.Report{
		Title:    title,
		Period:   domain.TimePeriod{Start: v.Start, End: v.End, Duration: duration},
		Sections: []domain.ReportSection{validation, scoring, stock},
	}
}

func metricValue(v float64) interface{} {
	if domain.IsMissing(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
