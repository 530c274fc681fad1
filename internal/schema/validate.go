//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package schema

import (
	"fmt"

	"github.com/bikestores/warehouse-etl/internal/table"
)

// ValidateShape checks that a transformed table carries exactly the
// declared columns, in the declared order. Strict load mode fails a
// table on the first mismatch; permissive mode never calls this.
func ValidateShape(def TableDef, t *table.Table) error {
	got := t.Columns()
	want := def.ColumnNames()
	if len(got) != len(want) {
		return fmt.Errorf("schema: %s has %d columns, declared %d",
			def.Name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("schema: %s column %d is %q, declared %q",
				def.Name, i, got[i], want[i])
		}
	}
	return nil
}
