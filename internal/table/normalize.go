//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package table

import "strings"

// NormalizeColumn standardizes a single column name: lowercase, with
// spaces and hyphens replaced by underscores. Applying it twice yields
// the same result.
func NormalizeColumn(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// NormalizeColumns returns a new table whose column names are
// standardized via NormalizeColumn. Rows are shared with the input; the
// input table is not modified.
func NormalizeColumns(t *Table) *Table {
	cols := make([]string, len(t.cols))
	for i, c := range t.cols {
		cols[i] = NormalizeColumn(c)
	}
	out := New(cols...)
	out.rows = t.rows
	return out
}
