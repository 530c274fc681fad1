//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package transform

import (
	"fmt"
	"time"

	"github.com/bikestores/warehouse-etl/internal/table"
)

// MissingColumnError reports a required source column absent after
// normalization.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("transform: source table %s missing required column %q", e.Table, e.Column)
}

// requireColumns resolves the given column names to indexes in t,
// failing on the first one that is absent.
func requireColumns(t *table.Table, tableName string, cols ...string) ([]int, error) {
	idxs := make([]int, len(cols))
	for i, c := range cols {
		idx := t.ColumnIndex(c)
		if idx < 0 {
			return nil, &MissingColumnError{Table: tableName, Column: c}
		}
		idxs[i] = idx
	}
	return idxs, nil
}

// mustAppend adds a row to a table the transformer itself built, so
// the column count always matches. A mismatch is a bug, not an input
// problem, and panics.
func mustAppend(t *table.Table, row []any) {
	if err := t.Append(row); err != nil {
		panic(err)
	}
}

// fullName joins first and last name with a space. Either side being
// NULL makes the full name NULL.
func fullName(first, last any) any {
	f, fok := first.(string)
	l, lok := last.(string)
	if !fok || !lok {
		return nil
	}
	return f + " " + l
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		t, err := time.Parse("2006-01-02", x)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
