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
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/bikestores/warehouse-etl/internal/schema"
	"github.com/bikestores/warehouse-etl/internal/table"
)

// SQLiteStore is a file-backed warehouse. Missing parent directories of
// the database file are created on open.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the warehouse database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("warehouse: creating %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("warehouse: opening %s: %w", path, err)
	}
	// The loader is single-writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, path: path}, nil
}

// Dialect implements Store.
func (s *SQLiteStore) Dialect() string {
	return schema.DialectSQLite
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Exec implements Store.
func (s *SQLiteStore) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// Query implements Store.
func (s *SQLiteStore) Query(ctx context.Context, query string, args ...any) (*table.Table, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := table.New(cols...)
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, c := range cells {
			if b, ok := c.([]byte); ok {
				cells[i] = string(b)
			}
		}
		if err := out.Append(cells); err != nil {
			return nil, err
		}
	}
	return out, rows.Err()
}

// Register implements Store: it creates a staging table typed by the
// supplied logical types (columns without one infer from the cell
// values) and bulk-inserts all rows inside one transaction.
func (s *SQLiteStore) Register(ctx context.Context, name string, t *table.Table, types []string) error {
	cols := t.Columns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		ddlType := inferSQLiteType(t, i)
		if logical := typeAt(types, i); logical != "" {
			ddlType = schema.TypeName(schema.DialectSQLite, logical)
		}
		defs[i] = fmt.Sprintf("%s %s", c, ddlType)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
	if err := s.Exec(ctx, create); err != nil {
		return fmt.Errorf("warehouse: staging %s: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %s VALUES (%s)", name, placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for _, row := range t.Rows() {
		for i, v := range row {
			args[i] = encodeCell(v, typeAt(types, i))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("warehouse: inserting into %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// Unregister implements Store.
func (s *SQLiteStore) Unregister(ctx context.Context, name string) error {
	return s.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name))
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// inferSQLiteType picks a staging column type from the first non-nil
// cell. All-NULL columns default to TEXT.
func inferSQLiteType(t *table.Table, col int) string {
	for _, row := range t.Rows() {
		switch row[col].(type) {
		case nil:
			continue
		case int64, bool:
			return "INTEGER"
		case float64:
			return "REAL"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}
