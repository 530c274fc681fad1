//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package transform reshapes normalized raw tables into the star schema:
// one transformer per warehouse table, run independently so a bad source
// table fails only its own target.
package transform

import (
	"fmt"
	"time"

	"github.com/bikestores/warehouse-etl/internal/logging"
	"github.com/bikestores/warehouse-etl/internal/table"
)

// DefaultFiscalStartMonth is the first month of the fiscal year
// (October) used when no override is configured.
const DefaultFiscalStartMonth = 10

// Run carries per-run transform state. Every table produced by one run
// shares the same audit timestamp.
type Run struct {
	Timestamp        time.Time
	FiscalStartMonth int
}

// NewRun creates a run context. A fiscalStartMonth outside [1,12] is a
// configuration error.
func NewRun(ts time.Time, fiscalStartMonth int) (*Run, error) {
	if fiscalStartMonth < 1 || fiscalStartMonth > 12 {
		return nil, fmt.Errorf("transform: fiscal start month %d out of range [1,12]", fiscalStartMonth)
	}
	return &Run{Timestamp: ts.UTC(), FiscalStartMonth: fiscalStartMonth}, nil
}

// Transformer binds a warehouse target table to the raw tables it
// consumes. A transformer with no sources (the date dimension, the
// static order status lookup) always runs.
type Transformer struct {
	Target  string
	Sources []string
	Fn      func(run *Run, raw map[string]*table.Table) (*table.Table, error)
}

// Transformers returns every registered transformer in warehouse load
// order (dimensions before facts).
func Transformers() []Transformer {
	return []Transformer{
		{Target: "dim_date", Fn: func(run *Run, _ map[string]*table.Table) (*table.Table, error) {
			return DateDimension(run), nil
		}},
		{Target: "dim_customers", Sources: []string{"customers"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return Customers(run, raw["customers"])
		}},
		{Target: "dim_brands", Sources: []string{"brands"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return Brands(run, raw["brands"])
		}},
		{Target: "dim_categories", Sources: []string{"categories"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return Categories(run, raw["categories"])
		}},
		{Target: "dim_products", Sources: []string{"products"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return Products(run, raw["products"])
		}},
		{Target: "dim_stores", Sources: []string{"stores"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return Stores(run, raw["stores"])
		}},
		{Target: "dim_staffs", Sources: []string{"staffs"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return Staffs(run, raw["staffs"])
		}},
		{Target: "dim_order_status", Fn: func(run *Run, _ map[string]*table.Table) (*table.Table, error) {
			return OrderStatus(run), nil
		}},
		{Target: "fact_sales", Sources: []string{"orders", "order_items"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return SalesFact(run, raw["orders"], raw["order_items"])
		}},
		{Target: "fact_inventory", Sources: []string{"stocks"}, Fn: func(run *Run, raw map[string]*table.Table) (*table.Table, error) {
			return InventoryFact(run, raw["stocks"])
		}},
	}
}

// Result records the outcome of one transformer.
type Result struct {
	Target string
	Rows   int
	Err    error
}

// All runs every transformer whose sources are present in raw.
// Transformer failures are isolated: the failing target is reported in
// its Result and the remaining transformers still run. The returned map
// holds only the successfully produced tables.
func All(run *Run, raw map[string]*table.Table) (map[string]*table.Table, []Result) {
	out := make(map[string]*table.Table)
	var results []Result

	for _, tr := range Transformers() {
		missing := false
		for _, src := range tr.Sources {
			if _, ok := raw[src]; !ok {
				missing = true
				break
			}
		}
		if missing {
			logging.Debug().
				Str("table", tr.Target).
				Msg("Source table not supplied, skipping transform")
			continue
		}

		t, err := tr.Fn(run, raw)
		if err != nil {
			logging.Error().
				Err(err).
				Str("table", tr.Target).
				Msg("Transform failed")
			results = append(results, Result{Target: tr.Target, Err: err})
			continue
		}

		logging.Info().
			Str("table", tr.Target).
			Int("rows", t.NumRows()).
			Msg("Transformed")
		out[tr.Target] = t
		results = append(results, Result{Target: tr.Target, Rows: t.NumRows()})
	}

	return out, results
}
