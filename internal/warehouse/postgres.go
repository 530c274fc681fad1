//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bikestores/warehouse-etl/internal/schema"
	"github.com/bikestores/warehouse-etl/internal/table"
)

// PostgresStore is a PostgreSQL-backed warehouse.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the warehouse database and verifies the
// connection with a ping.
func OpenPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("warehouse: parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("warehouse: connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("warehouse: ping: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Dialect implements Store.
func (s *PostgresStore) Dialect() string {
	return schema.DialectPostgres
}

// Exec implements Store.
func (s *PostgresStore) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.pool.Exec(ctx, rebind(query), args...)
	return err
}

// Query implements Store.
func (s *PostgresStore) Query(ctx context.Context, query string, args ...any) (*table.Table, error) {
	rows, err := s.pool.Query(ctx, rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}

	out := table.New(cols...)
	for rows.Next() {
		cells, err := rows.Values()
		if err != nil {
			return nil, err
		}
		if err := out.Append(cells); err != nil {
			return nil, err
		}
	}
	return out, rows.Err()
}

// Register implements Store. The staging table is a plain table rather
// than a TEMP table: pool connections rotate, and the loader's follow-up
// statements must see it. Columns with a declared logical type stage as
// that type (a DATE stays a DATE); the rest infer from the cell values.
func (s *PostgresStore) Register(ctx context.Context, name string, t *table.Table, types []string) error {
	cols := t.Columns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		ddlType := inferPostgresType(t, i)
		if logical := typeAt(types, i); logical != "" {
			ddlType = schema.TypeName(schema.DialectPostgres, logical)
		}
		defs[i] = fmt.Sprintf("%s %s", c, ddlType)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
	if _, err := s.pool.Exec(ctx, create); err != nil {
		return fmt.Errorf("warehouse: staging %s: %w", name, err)
	}

	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{name}, cols, pgx.CopyFromRows(t.Rows()))
	if err != nil {
		return fmt.Errorf("warehouse: copying into %s: %w", name, err)
	}
	return nil
}

// Unregister implements Store.
func (s *PostgresStore) Unregister(ctx context.Context, name string) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name))
	return err
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// rebind rewrites ? placeholders into the $1, $2 form pgx expects.
func rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func inferPostgresType(t *table.Table, col int) string {
	for _, row := range t.Rows() {
		switch row[col].(type) {
		case nil:
			continue
		case int64:
			return "BIGINT"
		case float64:
			return "DOUBLE PRECISION"
		case bool:
			return "BOOLEAN"
		case time.Time:
			return "TIMESTAMP"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}
