package demand

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/models/store"
	"github.com/de-tools/demand-atlas/pkg/store/duckdb"
)

// Store supports both ingestion (Add) and read (Get*) operations for
// demand records in DuckDB. The store itself holds no state beyond the
// connection; every call is a single query.
type Store interface {
	Add(ctx context.Context, records []store.DemandRecord) error
	GetRecords(ctx context.Context, startTime, endTime time.Time) ([]store.DemandRecord, error)
	GetSeries(ctx context.Context, startTime, endTime time.Time) (domain.Series, error)
	GetStats(ctx context.Context) (*store.DemandStats, error)
}

type demandStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &demandStore{db: db}, nil
}

func (s *demandStore) Add(ctx context.Context, records []store.DemandRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO demand_records (ts, demand, region, instance_type)
		VALUES (?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}

	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		demand := sql.NullFloat64{Float64: record.Demand, Valid: !math.IsNaN(record.Demand)}
		_, err = stmt.ExecContext(ctx,
			record.Timestamp,
			demand,
			record.Region,
			record.InstanceType,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return nil
}

func (s *demandStore) GetRecords(ctx context.Context, startTime, endTime time.Time) ([]store.DemandRecord, error) {
	query := `
		SELECT ts, demand, region, instance_type
		FROM demand_records
		WHERE ts >= ? AND ts < ?
		ORDER BY ts
	`
	rows, err := s.db.QueryContext(ctx, query, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("query demand records: %w", err)
	}
	defer rows.Close()
	return scanDemandRows(rows)
}

// GetSeries returns the total demand per timestamp over [startTime,
// endTime), ordered and summed across regions and instance types.
func (s *demandStore) GetSeries(ctx context.Context, startTime, endTime time.Time) (domain.Series, error) {
	query := `
		SELECT ts, SUM(demand) AS demand
		FROM demand_records
		WHERE ts >= ? AND ts < ?
		GROUP BY ts
		ORDER BY ts
	`
	rows, err := s.db.QueryContext(ctx, query, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("query demand series: %w", err)
	}
	defer rows.Close()

	series := make(domain.Series, 0)
	for rows.Next() {
		var ts time.Time
		var value sql.NullFloat64
		if err := rows.Scan(&ts, &value); err != nil {
			return nil, err
		}
		v := domain.Missing
		if value.Valid {
			v = value.Float64
		}
		series = append(series, domain.TimePoint{Timestamp: ts, Value: v})
	}
	return series, rows.Err()
}

func (s *demandStore) GetStats(ctx context.Context) (*store.DemandStats, error) {
	query := `SELECT COUNT(*), MIN(ts), MAX(ts) FROM demand_records`

	var total int64
	var first, last sql.NullTime
	if err := s.db.QueryRowContext(ctx, query).Scan(&total, &first, &last); err != nil {
		return nil, fmt.Errorf("get demand stats: %w", err)
	}

	stats := &store.DemandStats{RecordsCount: total}
	if first.Valid {
		t := first.Time
		stats.FirstRecord = &t
	}
	if last.Valid {
		t := last.Time
		stats.LastRecord = &t
	}
	return stats, nil
}

func scanDemandRows(rows *sql.Rows) ([]store.DemandRecord, error) {
	records := make([]store.DemandRecord, 0)
	for rows.Next() {
		var (
			ts                   time.Time
			demand               sql.NullFloat64
			region, instanceType sql.NullString
		)
		if err := rows.Scan(&ts, &demand, &region, &instanceType); err != nil {
			return nil, err
		}
		value := math.NaN()
		if demand.Valid {
			value = demand.Float64
		}
		records = append(records, store.DemandRecord{
			Timestamp:    ts,
			Demand:       value,
			Region:       region.String,
			InstanceType: instanceType.String,
		})
	}
	return records, rows.Err()
}
