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
	"sort"

	"github.com/bikestores/warehouse-etl/internal/logging"
	"github.com/bikestores/warehouse-etl/internal/schema"
	"github.com/bikestores/warehouse-etl/internal/table"
)

// Schema validation modes. Strict checks each transformed table against
// its declared shape and loads into declared DDL; permissive takes
// whatever shape the transform produced.
const (
	ModeStrict     = "strict"
	ModePermissive = "permissive"
)

// Loader materializes transformed tables into the warehouse. Every load
// is a full snapshot: drop the table, recreate it, fill it from a
// staging table.
type Loader struct {
	store Store
	mode  string
}

// NewLoader creates a loader for the given store. mode is ModeStrict or
// ModePermissive.
func NewLoader(store Store, mode string) (*Loader, error) {
	switch mode {
	case ModeStrict, ModePermissive:
	default:
		return nil, fmt.Errorf("warehouse: unknown schema mode %q", mode)
	}
	return &Loader{store: store, mode: mode}, nil
}

// CreateSchema replaces every declared warehouse table with its empty
// declared form, dimensions then facts, and ensures the run metadata
// table exists. Re-running discards prior schema and data.
func (l *Loader) CreateSchema(ctx context.Context) error {
	for _, def := range schema.All() {
		if err := l.store.Exec(ctx, schema.DropDDL(def)); err != nil {
			return fmt.Errorf("warehouse: dropping %s: %w", def.Name, err)
		}
		if err := l.store.Exec(ctx, schema.CreateDDL(l.store.Dialect(), def)); err != nil {
			return fmt.Errorf("warehouse: creating %s: %w", def.Name, err)
		}
	}
	return EnsureMetadataTable(ctx, l.store)
}

// TableResult records the outcome of one table load.
type TableResult struct {
	Table string
	Rows  int
	Err   error
}

// Report summarizes a load run.
type Report struct {
	Results []TableResult
	Loaded  int
	Total   int
}

// Success returns the loaded/attempted ratio, 1.0 for an empty run.
func (r *Report) Success() float64 {
	if r.Total == 0 {
		return 1.0
	}
	return float64(r.Loaded) / float64(r.Total)
}

// OK reports whether every attempted table loaded.
func (r *Report) OK() bool {
	return r.Loaded == r.Total
}

// LoadTable replaces one warehouse table with the given snapshot. The
// staging table is dropped again whether or not the load succeeds.
// Tables without a declared shape (extras outside the star schema) load
// as-supplied even in strict mode.
func (l *Loader) LoadTable(ctx context.Context, def schema.TableDef, t *table.Table) error {
	declared := len(def.Columns) > 0
	if l.mode == ModeStrict && declared {
		if err := schema.ValidateShape(def, t); err != nil {
			return err
		}
	}

	staging := "staging_" + def.Name
	if err := l.store.Unregister(ctx, staging); err != nil {
		return err
	}
	if err := l.store.Register(ctx, staging, t, stagingTypes(def, t)); err != nil {
		return err
	}
	defer l.store.Unregister(ctx, staging)

	if err := l.store.Exec(ctx, schema.DropDDL(def)); err != nil {
		return err
	}
	if l.mode == ModeStrict && declared {
		if err := l.store.Exec(ctx, schema.CreateDDL(l.store.Dialect(), def)); err != nil {
			return err
		}
		return l.store.Exec(ctx,
			fmt.Sprintf("INSERT INTO %s SELECT * FROM %s", def.Name, staging))
	}
	return l.store.Exec(ctx,
		fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM %s", def.Name, staging))
}

// stagingTypes maps each table column to its declared logical type, by
// name, so backends stage dates and timestamps as declared instead of
// guessing from the values. Columns outside the declaration infer.
func stagingTypes(def schema.TableDef, t *table.Table) []string {
	if len(def.Columns) == 0 {
		return nil
	}
	byName := make(map[string]string, len(def.Columns))
	for _, c := range def.Columns {
		byName[c.Name] = c.Type
	}
	types := make([]string, 0, t.NumCols())
	for _, c := range t.Columns() {
		types = append(types, byName[c])
	}
	return types
}

// LoadAll loads every supplied table in warehouse order, dimensions
// before facts, then any extra tables not in the declared schema. A
// failing table is logged and counted against the report; the remaining
// tables still load.
func (l *Loader) LoadAll(ctx context.Context, tables map[string]*table.Table) *Report {
	report := &Report{}

	load := func(def schema.TableDef, t *table.Table) {
		report.Total++
		if err := l.LoadTable(ctx, def, t); err != nil {
			logging.Error().
				Err(err).
				Str("table", def.Name).
				Msg("Load failed")
			report.Results = append(report.Results, TableResult{Table: def.Name, Err: err})
			return
		}
		logging.Info().
			Str("table", def.Name).
			Int("rows", t.NumRows()).
			Msg("Loaded")
		report.Loaded++
		report.Results = append(report.Results, TableResult{Table: def.Name, Rows: t.NumRows()})
	}

	for _, def := range schema.All() {
		if t, ok := tables[def.Name]; ok {
			load(def, t)
		}
	}

	// Extra tables have no declared shape, so they always load with
	// snapshot-of-whatever-was-supplied semantics.
	var extras []string
	for name := range tables {
		if _, ok := schema.Lookup(name); !ok {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		load(schema.TableDef{Name: name}, tables[name])
	}

	logging.Info().
		Int("loaded", report.Loaded).
		Int("total", report.Total).
		Float64("success", report.Success()).
		Msg("Load run complete")
	return report
}
