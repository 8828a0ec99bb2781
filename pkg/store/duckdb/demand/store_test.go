package demand

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/demand-atlas/pkg/models/store"
	"github.com/de-tools/demand-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func demandRecords(start time.Time) []store.DemandRecord {
	return []store.DemandRecord{
		{Timestamp: start, Demand: 10, Region: "us-east-1", InstanceType: "m5.large"},
		{Timestamp: start, Demand: 5, Region: "eu-west-1", InstanceType: "m5.large"},
		{Timestamp: start.Add(time.Hour), Demand: 20, Region: "us-east-1", InstanceType: "m5.large"},
	}
}

func TestDemandStore_AddAndGetRecords(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success - add and read back", func(t *testing.T) {
		err := f.store.Add(ctx, demandRecords(start))
		require.NoError(t, err)

		records, err := f.store.GetRecords(ctx, start, start.Add(2*time.Hour))
		require.NoError(t, err)

		require.Len(t, records, 3)
		regions := make(map[string]int)
		for _, r := range records {
			regions[r.Region]++
		}
		assert.Equal(t, 2, regions["us-east-1"])
		assert.Equal(t, 1, regions["eu-west-1"])
	})

	t.Run("success - empty records", func(t *testing.T) {
		err := f.store.Add(ctx, nil)
		require.NoError(t, err)
	})

	t.Run("success - range excludes end", func(t *testing.T) {
		records, err := f.store.GetRecords(ctx, start, start.Add(time.Hour))
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestDemandStore_GetSeries(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.store.Add(ctx, demandRecords(start)))

	series, err := f.store.GetSeries(ctx, start, start.Add(2*time.Hour))
	require.NoError(t, err)

	// Demand is summed across regions per timestamp.
	require.Len(t, series, 2)
	assert.Equal(t, 15.0, series[0].Value)
	assert.Equal(t, 20.0, series[1].Value)
	assert.True(t, series[0].Timestamp.Before(series[1].Timestamp))
}

func TestDemandStore_GetStats(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty store", func(t *testing.T) {
		stats, err := f.store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.RecordsCount)
		assert.Nil(t, stats.FirstRecord)
	})

	t.Run("populated store", func(t *testing.T) {
		require.NoError(t, f.store.Add(ctx, demandRecords(start)))

		stats, err := f.store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.RecordsCount)
		require.NotNil(t, stats.FirstRecord)
		assert.Equal(t, start, stats.FirstRecord.UTC())
		require.NotNil(t, stats.LastRecord)
		assert.Equal(t, start.Add(time.Hour), stats.LastRecord.UTC())
	})
}

func TestDemandStore_AddUsesTransactionFromContext(t *testing.T) {
	f := setupFixture(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tx, err := f.db.Begin()
	require.NoError(t, err)
	ctx := duckdb.WithTransaction(context.Background(), tx)

	require.NoError(t, f.store.Add(ctx, demandRecords(start)))
	require.NoError(t, tx.Rollback())

	stats, err := f.store.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.RecordsCount)
}

func TestDemandStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestDemandStore_GetStats_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WillReturnError(sql.ErrConnDone)

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.GetStats(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
