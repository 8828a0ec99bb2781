package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const DemandTableSchema = `
	CREATE TABLE IF NOT EXISTS demand_records (
		ts TIMESTAMP NOT NULL,
		demand DOUBLE,
		region VARCHAR,
		instance_type VARCHAR
	);
`

var bootQueries = []string{
	DemandTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the analytical store and runs the boot schema so callers can
// assume the demand table exists.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		boot := append([]string{}, bootQueries...)

		for _, query := range boot {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
