//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse owns the analytical store: backend connections,
// staged bulk loads, and the create-or-replace snapshot loader.
package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/bikestores/warehouse-etl/internal/schema"
	"github.com/bikestores/warehouse-etl/internal/table"
)

// Store is a warehouse backend. Register stages an in-memory table as a
// temporary table so the loader can materialize warehouse tables with
// plain SQL; Unregister drops the staging table again.
type Store interface {
	// Dialect returns the schema dialect name for DDL rendering.
	Dialect() string

	// Exec runs a statement that returns no rows. Placeholders use ?
	// regardless of backend.
	Exec(ctx context.Context, query string, args ...any) error

	// Query runs a statement and materializes the result.
	Query(ctx context.Context, query string, args ...any) (*table.Table, error)

	// Register stages t under the given table name. types optionally
	// carries the logical schema type per column; an empty entry (or a
	// nil slice) means the backend infers from the cell values.
	Register(ctx context.Context, name string, t *table.Table, types []string) error

	// Unregister drops a staging table created by Register.
	Unregister(ctx context.Context, name string) error

	Close() error
}

// Open connects to the configured backend. driver is "sqlite" or
// "postgres"; dsn is a file path for sqlite and a connection string for
// postgres.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("warehouse: unknown driver %q", driver)
	}
}

// encodeCell converts a table cell into a driver-friendly value for the
// SQLite backend, which stores dates and timestamps as TEXT and booleans
// as integers. The declared logical type decides the time format;
// untyped columns fall back to the short form for midnight values.
func encodeCell(v any, logical string) any {
	switch x := v.(type) {
	case time.Time:
		switch logical {
		case schema.Date:
			return x.Format("2006-01-02")
		case schema.Timestamp:
			return x.UTC().Format("2006-01-02 15:04:05")
		}
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.UTC().Format("2006-01-02 15:04:05")
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}

// typeAt returns the declared logical type for column i, or "".
func typeAt(types []string, i int) string {
	if i < len(types) {
		return types[i]
	}
	return ""
}
