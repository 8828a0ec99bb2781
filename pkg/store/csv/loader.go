// Package csv loads demand datasets from CSV files, transparently
// decompressing gzip archives. The loader requires timestamp and demand
// columns and carries every other column through as a grouping key.
package csv

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/demand-atlas/pkg/models/domain"
)

const (
	TimestampColumn = "timestamp"
	DemandColumn    = "demand"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadRecords reads the dataset at path into records. Missing timestamp or
// demand columns fail with a SchemaError; an empty demand cell becomes a
// Missing value rather than an error.
func LoadRecords(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip dataset: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return parse(csv.NewReader(reader))
}

// LoadSeries reads the dataset at path and keeps only the time/value pair,
// ordered by timestamp.
func LoadSeries(path string) (domain.Series, error) {
	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}

	series := make(domain.Series, 0, len(records))
	for _, r := range records {
		series = append(series, domain.TimePoint{Timestamp: r.Timestamp, Value: r.Value})
	}
	return series.Sorted(), nil
}

func parse(r *csv.Reader) ([]domain.Record, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, &domain.SchemaError{Field: TimestampColumn}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	tsIdx, ok := columns[TimestampColumn]
	if !ok {
		return nil, &domain.SchemaError{Field: TimestampColumn}
	}
	valIdx, ok := columns[DemandColumn]
	if !ok {
		return nil, &domain.SchemaError{Field: DemandColumn}
	}

	var records []domain.Record
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		ts, err := parseTimestamp(row[tsIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		value := domain.Missing
		if cell := strings.TrimSpace(row[valIdx]); cell != "" {
			value, err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: parse demand %q: %w", line, cell, err)
			}
		}

		groups := make(map[string]string)
		for name, idx := range columns {
			if name == TimestampColumn || name == DemandColumn {
				continue
			}
			groups[name] = row[idx]
		}

		records = append(records, domain.Record{
			Timestamp: ts,
			Value:     value,
			Groups:    groups,
		})
	}
	return records, nil
}

func parseTimestamp(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", cell)
}
