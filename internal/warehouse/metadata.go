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
	"strconv"
	"time"

	"github.com/bikestores/warehouse-etl/internal/schema"
	"github.com/bikestores/warehouse-etl/pkg/version"
)

// Metadata keys written by each load run.
const (
	MetaAppName     = "app_name"
	MetaAppVersion  = "app_version"
	MetaLastRunAt   = "last_run_at"
	MetaTablesTotal = "tables_total"
	MetaTablesOK    = "tables_loaded"
)

// EnsureMetadataTable creates the run metadata table if it does not
// exist. Unlike warehouse tables it is never replaced.
func EnsureMetadataTable(ctx context.Context, store Store) error {
	return store.Exec(ctx, schema.MetadataDDL())
}

// SetMetadata upserts a single key.
func SetMetadata(ctx context.Context, store Store, key, value string) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`, schema.MetadataTable)
	return store.Exec(ctx, query, key, value)
}

// GetMetadata reads a single key. Missing keys return ok=false.
func GetMetadata(ctx context.Context, store Store, key string) (string, bool, error) {
	t, err := store.Query(ctx,
		fmt.Sprintf("SELECT value FROM %s WHERE key = ?", schema.MetadataTable), key)
	if err != nil {
		return "", false, err
	}
	if t.NumRows() == 0 {
		return "", false, nil
	}
	v, _ := t.Value(0, "value")
	s, _ := v.(string)
	return s, true, nil
}

// AllMetadata reads every metadata key, sorted by key.
func AllMetadata(ctx context.Context, store Store) (map[string]string, error) {
	t, err := store.Query(ctx,
		fmt.Sprintf("SELECT key, value FROM %s ORDER BY key", schema.MetadataTable))
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		k, _ := t.Value(i, "key")
		v, _ := t.Value(i, "value")
		ks, _ := k.(string)
		vs, _ := v.(string)
		out[ks] = vs
	}
	return out, nil
}

// RecordRun writes the audit trail for one load run: application
// identity, run timestamp, aggregate counts, and per-table row counts
// under rows_<table> keys.
func RecordRun(ctx context.Context, store Store, ranAt time.Time, report *Report) error {
	if err := EnsureMetadataTable(ctx, store); err != nil {
		return err
	}

	entries := map[string]string{
		MetaAppName:     "warehouse-etl",
		MetaAppVersion:  version.Version,
		MetaLastRunAt:   ranAt.UTC().Format(time.RFC3339),
		MetaTablesTotal: strconv.Itoa(report.Total),
		MetaTablesOK:    strconv.Itoa(report.Loaded),
	}
	for _, r := range report.Results {
		if r.Err != nil {
			continue
		}
		entries["rows_"+r.Table] = strconv.Itoa(r.Rows)
	}

	for k, v := range entries {
		if err := SetMetadata(ctx, store, k, v); err != nil {
			return err
		}
	}
	return nil
}
