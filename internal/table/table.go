//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package table implements the in-memory column table passed between the
// transform layer and the warehouse loader. Cells are dynamically typed
// (int64, float64, string, bool, time.Time, or nil for SQL NULL).
package table

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Table is an ordered set of named columns over rows of cells.
// Operations never mutate the receiver's rows in place; transformers
// always produce new tables.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]any
}

// New creates an empty table with the given column names.
func New(cols ...string) *Table {
	t := &Table{
		cols:  append([]string(nil), cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range t.cols {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	i, ok := t.index[name]
	if !ok {
		return -1
	}
	return i
}

// Append adds a row. The row length must match the column count.
func (t *Table) Append(row []any) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("table: row has %d cells, want %d", len(row), len(t.cols))
	}
	t.rows = append(t.rows, row)
	return nil
}

// Row returns the i-th row. The returned slice is owned by the table.
func (t *Table) Row(i int) []any {
	return t.rows[i]
}

// Rows returns all rows. The returned slices are owned by the table.
func (t *Table) Rows() [][]any {
	return t.rows
}

// Value returns the cell at (row, column name). The second return is
// false when the column does not exist.
func (t *Table) Value(row int, col string) (any, bool) {
	i, ok := t.index[col]
	if !ok {
		return nil, false
	}
	return t.rows[row][i], true
}

// SortBy returns a copy of the table sorted ascending by the given
// columns. Nil cells order before non-nil ones.
func (t *Table) SortBy(cols ...string) *Table {
	idxs := make([]int, 0, len(cols))
	for _, c := range cols {
		if i, ok := t.index[c]; ok {
			idxs = append(idxs, i)
		}
	}
	out := New(t.cols...)
	out.rows = append([][]any(nil), t.rows...)
	sort.SliceStable(out.rows, func(a, b int) bool {
		for _, i := range idxs {
			if c := Compare(out.rows[a][i], out.rows[b][i]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

// Filter returns a copy containing only the rows for which keep returns
// true.
func (t *Table) Filter(keep func(row []any) bool) *Table {
	out := New(t.cols...)
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Compare orders two cells. Nil sorts first; numeric values compare
// numerically across int64/float64; everything else falls back to the
// string form.
func Compare(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
