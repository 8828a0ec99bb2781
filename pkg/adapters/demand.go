package adapters

import (
	"github.com/de-tools/demand-atlas/pkg/models/api"
	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/models/store"
)

func MapStoreDemandRecordToDomain(r store.DemandRecord) domain.Record {
	return domain.Record{
		Timestamp: r.Timestamp,
		Value:     r.Demand,
		Groups: map[string]string{
			"region":        r.Region,
			"instance_type": r.InstanceType,
		},
	}
}

func MapDomainRecordToStoreDemandRecord(r domain.Record) store.DemandRecord {
	return store.DemandRecord{
		Timestamp:    r.Timestamp,
		Demand:       r.Value,
		Region:       r.Groups["region"],
		InstanceType: r.Groups["instance_type"],
	}
}

func MapSeriesDomainToApi(s domain.Series) []api.TimePoint {
	out := make([]api.TimePoint, 0, len(s))
	for _, p := range s {
		out = append(out, api.TimePoint{
			Timestamp: p.Timestamp,
			Value:     optional(p.Value),
		})
	}
	return out
}

func MapValidationReportDomainToApi(r domain.ValidationReport) api.ValidationReport {
	return api.ValidationReport{
		Start:          r.Start,
		End:            r.End,
		ObservedCount:  r.ObservedCount,
		ExpectedCount:  r.ExpectedCount,
		MissingCount:   r.MissingCount,
		DuplicateCount: r.DuplicateCount,
		Completeness:   r.Completeness,
	}
}

func MapAccuracyMetricsDomainToApi(m domain.AccuracyMetrics) api.AccuracyMetrics {
	return api.AccuracyMetrics{
		MAE:     optional(m.MAE),
		RMSE:    optional(m.RMSE),
		MAPE:    optional(m.MAPE),
		Bias:    optional(m.Bias),
		Samples: m.Samples,
	}
}

// optional maps Missing to a JSON null; NaN is not representable in JSON.
func optional(v float64) *float64 {
	if domain.IsMissing(v) {
		return nil
	}
	return &v
}
