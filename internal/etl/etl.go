//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package etl runs the full pipeline: read the raw extract, reshape it
// into the star schema, and snapshot it into the warehouse.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/bikestores/warehouse-etl/internal/logging"
	"github.com/bikestores/warehouse-etl/internal/source"
	"github.com/bikestores/warehouse-etl/internal/transform"
	"github.com/bikestores/warehouse-etl/internal/warehouse"
)

// Config holds the pipeline parameters.
type Config struct {
	SourceDir        string
	Driver           string
	DSN              string
	SchemaMode       string
	FiscalStartMonth int
}

// RunReport aggregates the outcome of one pipeline run.
type RunReport struct {
	RanAt     time.Time
	Transform []transform.Result
	Load      *warehouse.Report
}

// Failed reports whether any transform or load step failed.
func (r *RunReport) Failed() bool {
	for _, t := range r.Transform {
		if t.Err != nil {
			return true
		}
	}
	return r.Load.Loaded < r.Load.Total
}

// Run executes the pipeline against a store it opens and closes itself.
func Run(ctx context.Context, cfg Config) (*RunReport, error) {
	store, err := warehouse.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return RunWithStore(ctx, store, cfg)
}

// RunWithStore executes the pipeline against an already open store.
// Per-table failures are isolated and surface in the report; only setup
// problems (unreadable extract, bad configuration, metadata write
// failures) return an error.
func RunWithStore(ctx context.Context, store warehouse.Store, cfg Config) (*RunReport, error) {
	ranAt := time.Now().UTC()

	raw, err := source.ReadDir(cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("etl: no source tables found in %s", cfg.SourceDir)
	}

	run, err := transform.NewRun(ranAt, cfg.FiscalStartMonth)
	if err != nil {
		return nil, err
	}
	tables, results := transform.All(run, raw)

	loader, err := warehouse.NewLoader(store, cfg.SchemaMode)
	if err != nil {
		return nil, err
	}
	if err := loader.CreateSchema(ctx); err != nil {
		return nil, err
	}
	report := loader.LoadAll(ctx, tables)

	// The snapshot already landed; a metadata failure only costs the
	// audit trail.
	if err := warehouse.RecordRun(ctx, store, ranAt, report); err != nil {
		logging.Error().
			Err(err).
			Msg("Recording run metadata failed")
	}

	logging.Info().
		Time("ran_at", ranAt).
		Int("loaded", report.Loaded).
		Int("total", report.Total).
		Msg("Pipeline finished")
	return &RunReport{RanAt: ranAt, Transform: results, Load: report}, nil
}
