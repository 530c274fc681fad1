//-------------------------------------------------------------------------
//
// BikeStores Warehouse ETL
//
// Copyright (c) 2025 - 2026, BikeStores Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bikestores/warehouse-etl/internal/warehouse"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show warehouse load state",
	Long: `Show the audit trail of the most recent load run: when it ran, which
version wrote it, and the per-table row counts recorded in etl_metadata.

Example:
  warehouse-etl status --db-path data/warehouse.db`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	store, err := warehouse.Open(ctx, cfg.Warehouse.Driver, cfg.DSN())
	if err != nil {
		return err
	}
	defer store.Close()

	meta, err := warehouse.AllMetadata(ctx, store)
	if err != nil {
		return fmt.Errorf("warehouse has no run metadata; run 'warehouse-etl load' first")
	}
	if len(meta) == 0 {
		return fmt.Errorf("warehouse has no run metadata; run 'warehouse-etl load' first")
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cmd.Printf("%-24s %s\n", k, meta[k])
	}
	return nil
}
