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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bikestores/warehouse-etl/internal/etl"
)

var (
	loadSchemaMode  string
	loadFiscalStart int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run the full ETL pipeline",
	Long: `Read the raw extract, reshape it into the star schema, and replace the
warehouse tables with the new snapshot. Dimensions load before facts. A
table that fails to transform or load is skipped; the run reports a
success ratio and exits non-zero only if nothing could be done.

Example:
  warehouse-etl load --source-dir data/raw --db-path data/warehouse.db
  warehouse-etl load --driver postgres --connection "postgres://..."`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadSchemaMode, "schema-mode", "",
		"schema validation mode: strict or permissive")
	loadCmd.Flags().IntVar(&loadFiscalStart, "fiscal-start-month", 0,
		"first month of the fiscal year (1-12)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadSchemaMode != "" {
		cfg.Warehouse.SchemaMode = loadSchemaMode
	}
	if loadFiscalStart > 0 {
		cfg.Transform.FiscalStartMonth = loadFiscalStart
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	report, err := etl.Run(ctx, etl.Config{
		SourceDir:        cfg.Source.Dir,
		Driver:           cfg.Warehouse.Driver,
		DSN:              cfg.DSN(),
		SchemaMode:       cfg.Warehouse.SchemaMode,
		FiscalStartMonth: cfg.Transform.FiscalStartMonth,
	})
	if err != nil {
		return err
	}

	for _, r := range report.Transform {
		if r.Err != nil {
			cmd.Printf("transform %-18s FAILED: %v\n", r.Target, r.Err)
		}
	}
	for _, r := range report.Load.Results {
		if r.Err != nil {
			cmd.Printf("load      %-18s FAILED: %v\n", r.Table, r.Err)
		} else {
			cmd.Printf("load      %-18s %d rows\n", r.Table, r.Rows)
		}
	}
	cmd.Printf("loaded %d/%d tables (%.0f%%)\n",
		report.Load.Loaded, report.Load.Total, report.Load.Success()*100)

	if report.Load.Loaded == 0 {
		return fmt.Errorf("no tables loaded")
	}
	return nil
}
