package store

import "time"

// DemandRecord is one pre-aggregated demand observation as persisted in the
// analytical store.
type DemandRecord struct {
	Timestamp    time.Time
	Demand       float64
	Region       string
	InstanceType string
}

// DemandStats summarizes what the store currently holds.
type DemandStats struct {
	RecordsCount int64
	FirstRecord  *time.Time
	LastRecord   *time.Time
}
