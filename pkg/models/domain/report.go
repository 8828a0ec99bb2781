package domain

import "time"

// ValidationReport summarizes how complete a series is against its expected
// fixed-frequency grid.
type ValidationReport struct {
	Start          time.Time
	End            time.Time
	ObservedCount  int // unique timestamps present
	ExpectedCount  int // grid points in [Start, End] at the declared step
	MissingCount   int
	DuplicateCount int     // timestamps that appeared more than once
	Completeness   float64 // percent; 0 when ExpectedCount is 0
}

// AccuracyMetrics scores a forecast against actuals over the
// pairwise-complete subset of their common timestamp domain. When Samples
// is 0 all four metrics are Missing and the caller must handle that
// explicitly.
type AccuracyMetrics struct {
	MAE     float64
	RMSE    float64
	MAPE    float64 // percent; entries with actual = 0 are excluded
	Bias    float64 // positive means net under-forecasting
	Samples int
}

// Report represents a complete analysis report
type Report struct {
	Title    string
	Period   TimePeriod
	Sections []ReportSection
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
