package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction scopes ingestion to an existing transaction; stores pick
// it up via GetTransaction and fall back to the bare connection otherwise.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
